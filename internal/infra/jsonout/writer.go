// Package jsonout is the filesystem writer collaborator: it serializes the
// generated sets and reports into the data directory and its public mirror,
// and syncs source asset directories into the public tree.
package jsonout

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"qcm-extractor/internal/domain"
)

const (
	questionsFile        = "questions.ar.generated.json"
	extractionReportFile = "extraction-report.json"
	flashcardsFile       = "signs.flashcards.ar.generated.json"
	quizFile             = "signs.quiz.ar.generated.json"
	signsReportFile      = "signs-extraction-report.json"
)

// Writer mirrors every generated JSON file into DataDir and PublicDataDir.
// Reports go to DataDir only.
type Writer struct {
	DataDir       string
	PublicDataDir string

	SignsAssetsSourceDir string
	SignsAssetsPublicDir string
	SignImagesSourceDir  string
	SignImagesPublicDir  string
}

// QuestionsPath is where WriteQuestions puts the generated set inside dataDir;
// the publish step reads it back from here.
func QuestionsPath(dataDir string) string {
	return filepath.Join(dataDir, questionsFile)
}

func (w *Writer) WriteQuestions(set domain.QuestionSet) error {
	return w.writeMirrored(questionsFile, set)
}

func (w *Writer) WriteFlashcards(set domain.SignFlashcardSet) error {
	return w.writeMirrored(flashcardsFile, set)
}

func (w *Writer) WriteQuiz(set domain.SignQuizSet) error {
	return w.writeMirrored(quizFile, set)
}

func (w *Writer) WriteExtractionReport(report any) error {
	return writeJSON(filepath.Join(w.DataDir, extractionReportFile), report)
}

func (w *Writer) WriteSignsReport(report any) error {
	return writeJSON(filepath.Join(w.DataDir, signsReportFile), report)
}

// SyncSignsAssets copies the signs asset directory into the public tree.
// Returns false without error when there is no source directory.
func (w *Writer) SyncSignsAssets() (bool, error) {
	return syncDir(w.SignsAssetsSourceDir, w.SignsAssetsPublicDir)
}

// SyncSignImages copies the by-id sign image directory into the public tree.
func (w *Writer) SyncSignImages() (bool, error) {
	return syncDir(w.SignImagesSourceDir, w.SignImagesPublicDir)
}

func (w *Writer) writeMirrored(name string, v any) error {
	if err := writeJSON(filepath.Join(w.DataDir, name), v); err != nil {
		return err
	}
	return writeJSON(filepath.Join(w.PublicDataDir, name), v)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", path, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func syncDir(src, dst string) (bool, error) {
	if src == "" || dst == "" {
		return false, nil
	}
	if _, err := os.Stat(src); err != nil {
		return false, nil
	}

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
	if err != nil {
		return false, fmt.Errorf("sync %s: %w", src, err)
	}
	return true, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
