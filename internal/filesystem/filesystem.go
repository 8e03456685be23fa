package filesystem

import "os"

// FileSystem abstracts the file operations the repair procedure needs, so the
// whole rewrite path can run against a temp directory in tests.
type FileSystem interface {
	ReadFile(path string) (string, error)
	WriteFile(path string, content string) error
	Exists(path string) bool
}

// DefaultFileSystem implements FileSystem on top of the os package.
type DefaultFileSystem struct{}

func (DefaultFileSystem) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (DefaultFileSystem) WriteFile(path string, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func (DefaultFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
