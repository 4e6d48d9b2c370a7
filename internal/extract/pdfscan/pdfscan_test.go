package pdfscan

import (
	"reflect"
	"testing"
)

func TestParseAnswerKeyMixedLetters(t *testing.T) {
	key := ParseAnswerKey("الإجابات\n1 A\n2 ب\n3 ج\n4 D")
	want := map[int]string{1: "A", 2: "B", 3: "C", 4: "D"}
	if !reflect.DeepEqual(key, want) {
		t.Fatalf("key = %v, want %v", key, want)
	}
}

func TestParseAnswerKeyStartsAtSectionHeader(t *testing.T) {
	text := "نص تمهيدي\nAnswer Key\n7) B\n8 - ج\n9: د"
	key := ParseAnswerKey(text)
	if key[7] != "B" || key[8] != "C" || key[9] != "D" {
		t.Fatalf("key = %v", key)
	}
}

func TestParseAnswerKeyArabicDigits(t *testing.T) {
	key := ParseAnswerKey("التصحيح\n١٢ أ")
	if key[12] != "A" {
		t.Fatalf("expected arabic digits normalized, got %v", key)
	}
}

func TestSplitBlocks(t *testing.T) {
	text := "مقدمة بلا رقم\n12) سؤال أول\nسطر إضافي\n13. سؤال ثان\n14\n"
	blocks := SplitBlocks(text)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %#v", len(blocks), blocks)
	}
	if blocks[0].SourceNumber != 12 || blocks[0].Text != "سؤال أول\nسطر إضافي" {
		t.Fatalf("block 0 = %+v", blocks[0])
	}
	if blocks[1].SourceNumber != 13 || blocks[1].Text != "سؤال ثان" {
		t.Fatalf("block 1 = %+v", blocks[1])
	}
}

func TestSplitBlocksDropsWhitespaceOnlyBlock(t *testing.T) {
	blocks := SplitBlocks("5)\n\n6) سؤال حقيقي")
	if len(blocks) != 1 || blocks[0].SourceNumber != 6 {
		t.Fatalf("blocks = %#v", blocks)
	}
}

func TestNormalizeOptionID(t *testing.T) {
	cases := map[string]string{
		"a": "A", "A": "A", "أ": "A", "إ": "A", "ا": "A",
		"b": "B", "ب": "B",
		"C": "C", "ج": "C",
		"d": "D", "د": "D",
		"هـ": "", "x": "", "": "",
	}
	for in, want := range cases {
		if got := NormalizeOptionID(in); got != want {
			t.Fatalf("NormalizeOptionID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildQuestionFromArabicBlock(t *testing.T) {
	blocks := SplitBlocks("12) أي إشارة تعني التوقف؟\nأ) توقف\nب) ممنوع\nج) ممر\nد) سرعة")
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	q := buildQuestion(blocks[0], 3, map[int]string{12: "A"}, 1)

	if q.Prompt != "أي إشارة تعني التوقف؟" {
		t.Fatalf("prompt = %q", q.Prompt)
	}
	wantIDs := []string{"A", "B", "C", "D"}
	if len(q.Choices) != 4 {
		t.Fatalf("choices = %+v", q.Choices)
	}
	for i, c := range q.Choices {
		if c.ID != wantIDs[i] {
			t.Fatalf("choice %d id = %q", i, c.ID)
		}
	}
	if q.Choices[0].Text != "توقف" || q.Choices[3].Text != "سرعة" {
		t.Fatalf("choice text wrong: %+v", q.Choices)
	}
	if q.CorrectChoiceID != "A" || q.NeedsReview {
		t.Fatalf("q = %+v", q)
	}
	if q.SourcePage != 3 || q.SourceNumber != 12 {
		t.Fatalf("source fields = %+v", q)
	}
}

func TestBlockWithoutMarkersNeedsReview(t *testing.T) {
	blocks := SplitBlocks("5) سؤال غير واضح بدون خيارات")
	q := buildQuestion(blocks[0], 1, map[int]string{5: "A"}, 1)
	if len(q.Choices) != 0 {
		t.Fatalf("expected no choices, got %+v", q.Choices)
	}
	if q.CorrectChoiceID != "" {
		t.Fatalf("answer must be discarded when its letter is not a parsed choice")
	}
	if !q.NeedsReview {
		t.Fatalf("expected review flag")
	}
}

func TestDuplicateMarkersKeepFirst(t *testing.T) {
	_, choices := parseChoices("ما هذا؟\nأ) أول\nب) ثان\nأ) مكرر\nج) ثالث")
	ids := make([]string, 0, len(choices))
	for _, c := range choices {
		ids = append(ids, c.ID)
	}
	if !reflect.DeepEqual(ids, []string{"A", "B", "C"}) {
		t.Fatalf("ids = %v", ids)
	}
	if choices[0].Text != "أول" {
		t.Fatalf("first occurrence must win, got %q", choices[0].Text)
	}
}

func TestAnswerKeyLetterMissingFromChoices(t *testing.T) {
	blocks := SplitBlocks("9) سؤال بخيارين فقط\nأ) نعم\nب) لا")
	q := buildQuestion(blocks[0], 1, map[int]string{9: "D"}, 1)
	if q.CorrectChoiceID != "" || !q.NeedsReview {
		t.Fatalf("q = %+v", q)
	}
}

func TestBuildQuestionSetOrderingAndPageIsolation(t *testing.T) {
	pages := []Page{
		{Number: 1, Text: "1) سؤال الصفحة الأولى\nأ) نعم\nب) لا"},
		// Block 2 starts at the bottom of page 1 in the real document, but its
		// options landed on page 2; pages are segmented independently, so the
		// orphan options attach to no numbered block and block 2 keeps only
		// what page 2 gives it.
		{Number: 2, Text: "2) سؤال الصفحة الثانية\nأ) صح\nب) خطأ\n\nالإجابات\n1 أ\n2 ب"},
	}
	set := BuildQuestionSet(pages)

	if len(set.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(set.Questions))
	}
	if set.Questions[0].ID != "q-0001" || set.Questions[1].ID != "q-0002" {
		t.Fatalf("global sequence broken: %q, %q", set.Questions[0].ID, set.Questions[1].ID)
	}
	if set.Questions[0].SourcePage != 1 || set.Questions[1].SourcePage != 2 {
		t.Fatalf("page attribution wrong")
	}
	if set.Questions[0].CorrectChoiceID != "A" || set.Questions[1].CorrectChoiceID != "B" {
		t.Fatalf("answer key cross-reference failed: %+v", set.Questions)
	}
	if set.Language != "ar" || set.Direction != "rtl" {
		t.Fatalf("set metadata = %+v", set)
	}
}
