package submit

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/rmoralesp/jobfit/internal/catalog"
	"github.com/rmoralesp/jobfit/internal/matcher"
)

type stubClient struct {
	calls   int
	jobText string
	files   []capturedFile
	result  *matcher.MatchResult
	err     error
}

type capturedFile struct {
	name    string
	content string
}

func (s *stubClient) Submit(jobText string, files []matcher.File) (*matcher.MatchResult, error) {
	s.calls++
	s.jobText = jobText
	for _, f := range files {
		data, _ := io.ReadAll(f.Content)
		s.files = append(s.files, capturedFile{name: f.Name, content: string(data)})
	}

	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestController(t *testing.T, client *stubClient) *Controller {
	t.Helper()

	cat, err := catalog.New()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	return New(cat, client, zap.NewNop())
}

func TestSubmitRejectsEmptyJobSelection(t *testing.T) {
	client := &stubClient{}
	controller := newTestController(t, client)

	_, err := controller.Submit(nil, []matcher.File{{Name: "a", Content: strings.NewReader("x")}})

	if !errors.Is(err, ErrNoJobSelected) {
		t.Fatalf("expected ErrNoJobSelected, got %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("expected no request, got %d", client.calls)
	}
}

func TestSubmitRejectsEmptyFileSelection(t *testing.T) {
	client := &stubClient{}
	controller := newTestController(t, client)

	_, err := controller.Submit([]string{"finance_analyst"}, nil)

	if !errors.Is(err, ErrNoFileSelected) {
		t.Fatalf("expected ErrNoFileSelected, got %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("expected no request, got %d", client.calls)
	}
}

func TestSubmitJoinsJobTextsInSelectionOrder(t *testing.T) {
	client := &stubClient{result: &matcher.MatchResult{
		ExtractedTexts:   []string{"a", "b"},
		PredictionScores: []float64{0.1, 0.2},
	}}
	controller := newTestController(t, client)

	cat, _ := catalog.New()
	first, _ := cat.FullText("finance_analyst")
	second, _ := cat.FullText("hr_specialist")

	files := []matcher.File{
		{Name: "alice.pdf", Content: strings.NewReader("alice")},
		{Name: "bob.pdf", Content: strings.NewReader("bob")},
	}

	result, err := controller.Submit([]string{"finance_analyst", "hr_specialist"}, files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.calls != 1 {
		t.Fatalf("expected exactly one request, got %d", client.calls)
	}

	expected := first + catalog.Separator + second
	if client.jobText != expected {
		t.Fatalf("unexpected job text:\n%q\nwant:\n%q", client.jobText, expected)
	}

	if len(client.files) != 2 || client.files[0].name != "alice.pdf" || client.files[1].name != "bob.pdf" {
		t.Fatalf("expected files in selection order, got %v", client.files)
	}

	if result.Len() != 2 {
		t.Fatalf("expected 2 results, got %d", result.Len())
	}
}

func TestSubmitUnknownJobID(t *testing.T) {
	client := &stubClient{}
	controller := newTestController(t, client)

	_, err := controller.Submit([]string{"no_such_job"}, []matcher.File{{Name: "a", Content: strings.NewReader("x")}})

	var notFound *catalog.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("expected no request, got %d", client.calls)
	}
}

func TestSubmitPathsValidation(t *testing.T) {
	client := &stubClient{}
	controller := newTestController(t, client)

	if _, _, err := controller.SubmitPaths(nil, []string{"resume.pdf"}); !errors.Is(err, ErrNoJobSelected) {
		t.Fatalf("expected ErrNoJobSelected, got %v", err)
	}

	if _, _, err := controller.SubmitPaths([]string{"finance_analyst"}, nil); !errors.Is(err, ErrNoFileSelected) {
		t.Fatalf("expected ErrNoFileSelected, got %v", err)
	}

	if client.calls != 0 {
		t.Fatalf("expected no request, got %d", client.calls)
	}
}

func TestSubmitPathsOpensFilesInOrder(t *testing.T) {
	client := &stubClient{result: &matcher.MatchResult{
		ExtractedTexts:   []string{"a", "b"},
		PredictionScores: []float64{0.3, 0.4},
	}}
	controller := newTestController(t, client)

	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "alice.pdf", "alice raw"),
		writeFile(t, dir, "bob.pdf", "bob raw"),
	}

	_, names, err := controller.SubmitPaths([]string{"finance_analyst"}, paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(names) != 2 || names[0] != "alice.pdf" || names[1] != "bob.pdf" {
		t.Fatalf("unexpected names: %v", names)
	}

	if client.files[0].content != "alice raw" || client.files[1].content != "bob raw" {
		t.Fatalf("unexpected file contents: %v", client.files)
	}
}

func TestSubmitPathsMissingFile(t *testing.T) {
	client := &stubClient{}
	controller := newTestController(t, client)

	_, _, err := controller.SubmitPaths([]string{"finance_analyst"}, []string{"/no/such/file.pdf"})
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if client.calls != 0 {
		t.Fatalf("expected no request, got %d", client.calls)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}

	return path
}
