// Package journal keeps an sqlite log of the external mutations that
// really ran, so a run can be audited after the fact.
package journal

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/itsjavi/tzshift/internal/errs"
)

type Run struct {
	ID        string `gorm:"type:string;size:36;primarykey"`
	Command   string `gorm:"type:string;size:32"`
	StartedAt time.Time
}

func (Run) TableName() string {
	return "runs"
}

type Mutation struct {
	ID        uint   `gorm:"primarykey"`
	RunID     string `gorm:"type:string;size:36;index"`
	Program   string `gorm:"type:string;size:64"`
	Args      string `gorm:"type:text"`
	FileCount int
	FirstFile string `gorm:"type:text"`
	CreatedAt time.Time
}

func (Mutation) TableName() string {
	return "mutations"
}

type Journal struct {
	db     *gorm.DB
	file   string
	run    Run
	logger zerolog.Logger
}

// Open connects to dbFile and migrates the schema.
func Open(dbFile string, zl zerolog.Logger) (*Journal, error) {
	dbLogger := logger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Minute,
			LogLevel:      logger.Silent,
		},
	)
	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, errs.Wrap(errs.NotFound, err, "failed to open journal %q", dbFile)
	}

	nativeDB, err := db.DB()
	if err != nil {
		return nil, errs.Wrap(errs.NotFound, err, "failed to open journal %q", dbFile)
	}
	nativeDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Run{}, &Mutation{}); err != nil {
		return nil, errs.Wrap(errs.InvalidFormat, err, "failed to migrate journal %q", dbFile)
	}

	return &Journal{db: db, file: dbFile, logger: zl}, nil
}

// Begin starts a new run; later mutations are recorded under it.
func (j *Journal) Begin(command string) error {
	run := Run{ID: uuid.NewString(), Command: command, StartedAt: time.Now()}
	if err := j.db.Create(&run).Error; err != nil {
		return errs.Wrap(errs.InvalidFormat, err, "failed to start run in %q", j.file)
	}
	j.run = run
	return nil
}

func (j *Journal) RunID() string {
	return j.run.ID
}

// Record stores one mutation of the current run. A failing insert is
// logged and otherwise ignored, the mutation itself already happened.
func (j *Journal) Record(program string, args []string, files []string) {
	if j.run.ID == "" {
		j.logger.Warn().Str("program", program).Msg("mutation outside of a run, not recorded")
		return
	}

	m := Mutation{
		RunID:     j.run.ID,
		Program:   program,
		Args:      strings.Join(args, " "),
		FileCount: len(files),
	}
	if len(files) > 0 {
		m.FirstFile = files[0]
	}

	if err := j.db.Create(&m).Error; err != nil {
		j.logger.Error().Err(err).Str("journal", j.file).Str("program", program).Msg("failed to record mutation")
	}
}

// Entry is a mutation together with the command of its run.
type Entry struct {
	Mutation
	Command string
}

// Recent returns up to limit mutations, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	var mutations []Mutation
	if err := j.db.Order("id desc").Limit(limit).Find(&mutations).Error; err != nil {
		return nil, errs.Wrap(errs.InvalidFormat, err, "failed to read journal %q", j.file)
	}

	commands := make(map[string]string)
	entries := make([]Entry, 0, len(mutations))
	for _, m := range mutations {
		cmd, ok := commands[m.RunID]
		if !ok {
			var run Run
			if err := j.db.First(&run, "id = ?", m.RunID).Error; err == nil {
				cmd = run.Command
			}
			commands[m.RunID] = cmd
		}
		entries = append(entries, Entry{Mutation: m, Command: cmd})
	}
	return entries, nil
}

func (j *Journal) Close() error {
	nativeDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return nativeDB.Close()
}
