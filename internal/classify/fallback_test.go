package classify

import (
	"reflect"
	"testing"
)

func TestFallback(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantType    QueryType
		wantSubject string
		wantLevel   string
	}{
		{
			name:        "ia keyword as token",
			query:       "How do I write a good Math AA IA introduction?",
			wantType:    IAFeedback,
			wantSubject: "Mathematics AA",
			wantLevel:   "",
		},
		{
			name:        "internal assessment phrase",
			query:       "What should my internal assessment for chemistry cover?",
			wantType:    IAFeedback,
			wantSubject: "Chemistry",
			wantLevel:   "",
		},
		{
			name:        "mathematics does not trigger ia",
			query:       "What topics are in mathematics?",
			wantType:    GeneralInfo,
			wantSubject: "Mathematics AA",
			wantLevel:   "",
		},
		{
			name:        "exam keyword",
			query:       "Help me with this physics exam problem",
			wantType:    ExamQuestion,
			wantSubject: "Physics",
			wantLevel:   "",
		},
		{
			name:        "question keyword",
			query:       "Solve this question about supply and demand in economics",
			wantType:    ExamQuestion,
			wantSubject: "Economics",
			wantLevel:   "",
		},
		{
			name:        "math applications variant",
			query:       "Explain regression in math applications and interpretation",
			wantType:    GeneralInfo,
			wantSubject: "Mathematics AI",
			wantLevel:   "",
		},
		{
			name:        "hl level",
			query:       "What is covered in biology HL?",
			wantType:    GeneralInfo,
			wantSubject: "Biology",
			wantLevel:   "HL",
		},
		{
			name:        "sl level",
			query:       "psychology sl topics",
			wantType:    GeneralInfo,
			wantSubject: "Psychology",
			wantLevel:   "SL",
		},
		{
			name:        "no signals at all",
			query:       "Tell me about the diploma programme",
			wantType:    GeneralInfo,
			wantSubject: "",
			wantLevel:   "",
		},
		{
			name:        "empty query",
			query:       "",
			wantType:    GeneralInfo,
			wantSubject: "",
			wantLevel:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fallback(tt.query)
			if got.QueryType != tt.wantType {
				t.Errorf("QueryType = %q, want %q", got.QueryType, tt.wantType)
			}
			if got.Subject != tt.wantSubject {
				t.Errorf("Subject = %q, want %q", got.Subject, tt.wantSubject)
			}
			if got.Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", got.Level, tt.wantLevel)
			}
		})
	}
}

func TestFallbackSearchTerms(t *testing.T) {
	got := Fallback("one two three four five six seven")
	want := []string{"one", "two", "three", "four", "five"}
	if !reflect.DeepEqual(got.SearchTerms, want) {
		t.Errorf("SearchTerms = %v, want %v", got.SearchTerms, want)
	}

	short := Fallback("just two")
	if !reflect.DeepEqual(short.SearchTerms, []string{"just", "two"}) {
		t.Errorf("SearchTerms = %v, want [just two]", short.SearchTerms)
	}
}

func TestFallbackIATokenPunctuation(t *testing.T) {
	got := Fallback("Any feedback on my IA?")
	if got.QueryType != IAFeedback {
		t.Errorf("QueryType = %q, want %q", got.QueryType, IAFeedback)
	}
}
