// Package batch scores a YAML file of subjects offline and produces the same
// ledger workbook the HTTP API exports.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Alijeyrad/angket_backend/internal/ledger"
	"github.com/Alijeyrad/angket_backend/internal/service/assessment"
)

var ErrNoSubjects = errors.New("batch file lists no subjects")

// File is the YAML input. Top-level identity fields apply to every subject
// that leaves them empty.
type File struct {
	Date         string    `yaml:"date"`
	Institution  string    `yaml:"institution"`
	AssessorName string    `yaml:"assessor_name"`
	Subjects     []Subject `yaml:"subjects"`
}

type Subject struct {
	Date         string      `yaml:"date"`
	Institution  string      `yaml:"institution"`
	SubjectName  string      `yaml:"subject_name"`
	ClassLabel   string      `yaml:"class_label"`
	AssessorName string      `yaml:"assessor_name"`
	Scores       map[int]int `yaml:"scores"`
}

func Decode(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, ErrNoSubjects
		}
		return File{}, fmt.Errorf("decode batch: %w", err)
	}
	if len(f.Subjects) == 0 {
		return File{}, ErrNoSubjects
	}
	return f, nil
}

func (f File) identity(s Subject) ledger.Identity {
	return ledger.Identity{
		Date:         firstNonBlank(s.Date, f.Date),
		Institution:  firstNonBlank(s.Institution, f.Institution),
		SubjectName:  s.SubjectName,
		ClassLabel:   s.ClassLabel,
		AssessorName: firstNonBlank(s.AssessorName, f.AssessorName),
	}
}

// Run scores every subject on a fresh sheet in one session, commits each to the
// ledger and returns the exported workbook. The first failing subject aborts
// the run; its 1-based index is part of the error.
func Run(ctx context.Context, svc assessment.Service, f File) (assessment.Export, error) {
	v, err := svc.CreateSession(ctx)
	if err != nil {
		return assessment.Export{}, err
	}
	defer svc.DeleteSession(ctx, v.ID)

	for i, s := range f.Subjects {
		if _, err := svc.Reset(ctx, v.ID); err != nil {
			return assessment.Export{}, subjectError(i, s, err)
		}
		if len(s.Scores) > 0 {
			if _, err := svc.SetScores(ctx, v.ID, s.Scores); err != nil {
				return assessment.Export{}, subjectError(i, s, err)
			}
		}
		if _, err := svc.Commit(ctx, v.ID, f.identity(s)); err != nil {
			return assessment.Export{}, subjectError(i, s, err)
		}
	}

	return svc.Export(ctx, v.ID)
}

func subjectError(i int, s Subject, err error) error {
	if name := strings.TrimSpace(s.SubjectName); name != "" {
		return fmt.Errorf("subject %d (%s): %w", i+1, name, err)
	}
	return fmt.Errorf("subject %d: %w", i+1, err)
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
