package examcsv

import (
	"strings"
	"testing"

	"qcm-extractor/internal/domain"
)

const header = "ID,Question Text (نص السؤال),Option 1,Option 2,Option 3,Correct Answer,Correct Answer Index"

func buildOne(t *testing.T, row string) domain.Question {
	t.Helper()
	set, _, err := BuildQuestionSet(header + "\n" + row + "\n")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(set.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(set.Questions))
	}
	return set.Questions[0]
}

func TestBuildQuestionSetEndToEnd(t *testing.T) {
	q := buildOne(t, "1,ما هي الإشارة الحمراء؟,توقف,سرعة,انعطاف,توقف,1")

	if len(q.Choices) != 3 {
		t.Fatalf("expected 3 choices, got %d", len(q.Choices))
	}
	wantIDs := []string{"A", "B", "C"}
	wantTexts := []string{"توقف", "سرعة", "انعطاف"}
	for i, c := range q.Choices {
		if c.ID != wantIDs[i] || c.Text != wantTexts[i] {
			t.Fatalf("choice %d = %+v", i, c)
		}
	}
	if q.CorrectChoiceID != "A" {
		t.Fatalf("correct = %q, want A", q.CorrectChoiceID)
	}
	if q.SourceNumber != 1 {
		t.Fatalf("source number = %d", q.SourceNumber)
	}
	if q.NeedsReview {
		t.Fatalf("clean row must not need review")
	}
}

func TestIndexBeatsAnswerText(t *testing.T) {
	// Index column says option 2 even though the text column names option 1.
	q := buildOne(t, "1,ما هي الإشارة الحمراء؟,توقف,سرعة,انعطاف,توقف,2")
	if q.CorrectChoiceID != "B" {
		t.Fatalf("index must take priority, got %q", q.CorrectChoiceID)
	}
}

func TestTextMatchFallback(t *testing.T) {
	q := buildOne(t, "1,ما هي الإشارة الحمراء؟,توقف,سرعة,انعطاف,سرعة.,")
	if q.CorrectChoiceID != "B" {
		t.Fatalf("compare-key match expected B, got %q", q.CorrectChoiceID)
	}
}

func TestUnresolvableAnswerFlagsReview(t *testing.T) {
	q := buildOne(t, "1,ما هي الإشارة الحمراء؟,توقف,سرعة,انعطاف,غير موجود,9")
	if q.CorrectChoiceID != "" {
		t.Fatalf("expected no answer, got %q", q.CorrectChoiceID)
	}
	if !q.NeedsReview {
		t.Fatalf("unresolved answer must flag review")
	}
}

func TestEmptyPromptRowDropped(t *testing.T) {
	set, report, err := BuildQuestionSet(header + "\n1,,توقف,سرعة,,توقف,1\n2,سؤال صالح هنا,نعم,لا,,نعم,1\n")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(set.Questions) != 1 {
		t.Fatalf("expected prompt-less row dropped, got %d questions", len(set.Questions))
	}
	if report.RowsSkipped != 1 || report.TotalRows != 2 {
		t.Fatalf("report = %+v", report)
	}
	// IDs keep the source row position, so gaps remain where rows were dropped.
	if set.Questions[0].ID != "q-0002" {
		t.Fatalf("id = %q, want q-0002", set.Questions[0].ID)
	}
}

func TestChoiceIDsFollowColumnOrder(t *testing.T) {
	csv := "ID,Question Text,Option 2,Option 1,Correct Answer Index\n1,سؤال بترتيب معكوس,ثاني,أول,1\n"
	set, _, err := BuildQuestionSet(csv)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	q := set.Questions[0]
	if q.Choices[0].ID != "A" || q.Choices[0].Text != "أول" {
		t.Fatalf("option columns must sort numerically, got %+v", q.Choices)
	}
	if q.CorrectChoiceID != "A" {
		t.Fatalf("correct = %q", q.CorrectChoiceID)
	}
}

func TestSignsTypeWithoutPathNeedsReview(t *testing.T) {
	csv := "ID,Question Text,Option 1,Option 2,Correct Answer Index,Type,Sign Path\n1,ما معنى هذه الإشارة؟,قف,انطلق,1,SIGNS,\n"
	set, report, err := BuildQuestionSet(csv)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	q := set.Questions[0]
	if q.QuestionType != "Signs" {
		t.Fatalf("type = %q", q.QuestionType)
	}
	if q.SignPath != "" {
		t.Fatalf("sign path must stay empty, got %q", q.SignPath)
	}
	if !q.NeedsReview {
		t.Fatalf("signs question without image must need review")
	}
	if report.SignsMissingImageCount != 1 {
		t.Fatalf("report = %+v", report)
	}
}

func TestSignPathNormalization(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"signs/stop.png", "/assets/signs/stop.png"},
		{"./assets/signs/stop.png", "/assets/signs/stop.png"},
		{"public\\assets\\signs\\stop.png", "/assets/signs/stop.png"},
		{"/already/rooted.png", "/already/rooted.png"},
		{"https://example.com/x.png", "https://example.com/x.png"},
		{"stop.png", "/assets/signs/stop.png"},
	}
	for _, tc := range cases {
		if got := normalizeSignPath(tc.in); got != tc.want {
			t.Fatalf("normalizeSignPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReservedTypeCodesSuppressed(t *testing.T) {
	csv := "ID,Question Text,Option 1,Option 2,Correct Answer Index,Cat,Type\n" +
		"1,سؤال عن النوع هنا,نعم,لا,1,BC,bc\n" +
		"2,سؤال آخر عن النوع,نعم,لا,1,G,Priority\n" +
		"3,سؤال ثالث للنوع,نعم,لا,1,X1,x1\n"
	set, _, err := BuildQuestionSet(csv)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if set.Questions[0].QuestionType != "" {
		t.Fatalf("reserved code must be suppressed, got %q", set.Questions[0].QuestionType)
	}
	if set.Questions[1].QuestionType != "Priority" {
		t.Fatalf("type = %q, want Priority", set.Questions[1].QuestionType)
	}
	if set.Questions[2].QuestionType != "" {
		t.Fatalf("type equal to category must be suppressed, got %q", set.Questions[2].QuestionType)
	}
	if set.Questions[2].Category != "X1" {
		t.Fatalf("category = %q", set.Questions[2].Category)
	}
}

func TestNoHeaderRowIsFatal(t *testing.T) {
	if _, _, err := BuildQuestionSet("   \n \n"); err != domain.ErrNoHeaderRow {
		t.Fatalf("expected ErrNoHeaderRow, got %v", err)
	}
}

func TestManyOptionsGetSyntheticIDs(t *testing.T) {
	var b strings.Builder
	b.WriteString("ID,Question Text")
	for i := 1; i <= 6; i++ {
		b.WriteString(",Option ")
		b.WriteString(string(rune('0' + i)))
	}
	b.WriteString("\n1,سؤال بستة خيارات,أ١,أ٢,أ٣,أ٤,أ٥,أ٦\n")
	set, _, err := BuildQuestionSet(b.String())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	q := set.Questions[0]
	if len(q.Choices) != 6 {
		t.Fatalf("expected 6 choices, got %d", len(q.Choices))
	}
	if q.Choices[4].ID != "OPT5" || q.Choices[5].ID != "OPT6" {
		t.Fatalf("synthetic ids wrong: %+v", q.Choices)
	}
}
