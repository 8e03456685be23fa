package journal

import (
	"fmt"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// JournalManager records the outcome of repair runs in a local SQLite
// database so earlier runs can be inspected after the fact.
type JournalManager struct {
	db *gorm.DB
}

// RepairRecord is one file outcome of one repair run.
type RepairRecord struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	SessionID string `gorm:"index"`
	VenvDir   string
	File      string
	Outcome   string
}

func NewJournalManager(dbFilePath string) (*JournalManager, error) {
	// busy_timeout(5000): wait out a concurrent run instead of failing
	// synchronous(1): NORMAL durability is enough for an audit journal
	connectionString := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=synchronous(1)", dbFilePath)

	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening journal database")
		return nil, err
	}

	if err := db.AutoMigrate(&RepairRecord{}); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SQLite serializes writes anyway, keep the pool minimal
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &JournalManager{db: db}, nil
}

// Record stores one file outcome under the given session.
func (m *JournalManager) Record(sessionID, venvDir, file, outcome string) error {
	return m.db.Create(&RepairRecord{
		SessionID: sessionID,
		VenvDir:   venvDir,
		File:      file,
		Outcome:   outcome,
	}).Error
}

// Recent returns up to limit records, newest first.
func (m *JournalManager) Recent(limit int) ([]RepairRecord, error) {
	var records []RepairRecord

	err := m.db.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (m *JournalManager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
