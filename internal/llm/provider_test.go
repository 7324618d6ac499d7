package llm

import (
	"strings"
	"testing"

	"github.com/jaehyun-im/kcscbot/internal/model"
)

func TestCleanKeyword(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain keywords", "철근 피복두께", "철근 피복두께"},
		{"first line only", "철근 피복두께\n설명: 핵심 명사입니다.", "철근 피복두께"},
		{"crlf reply", "내진설계\r\n기타", "내진설계"},
		{"hyphen and slash split", "철근-피복/두께", "철근 피복 두께"},
		{"quotes stripped", `"철근 피복"`, "철근 피복"},
		{"backticks stripped", "`철근`", "철근"},
		{"whitespace collapsed", "  철근   피복두께  ", "철근 피복두께"},
		{"empty reply", "", ""},
		{"whitespace only", "   \n무시됨", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanKeyword(tt.input); got != tt.want {
				t.Errorf("CleanKeyword(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateContext(t *testing.T) {
	korean := strings.Repeat("가", 10)

	if got := TruncateContext(korean, 4); got != "가가가가" {
		t.Errorf("TruncateContext = %q, want 4 runes", got)
	}
	if got := TruncateContext(korean, 10); got != korean {
		t.Errorf("Text at the limit should pass through, got %q", got)
	}
	if got := TruncateContext(korean, 100); got != korean {
		t.Errorf("Short text should pass through, got %q", got)
	}
	if got := TruncateContext(korean, 0); got != korean {
		t.Errorf("Zero limit disables truncation, got %q", got)
	}
}

func TestBuildPrompts(t *testing.T) {
	kp := BuildKeywordPrompt("피복두께가 뭐야?")
	if !strings.Contains(kp, "피복두께가 뭐야?") {
		t.Error("Keyword prompt should quote the question")
	}

	ap := BuildAnswerPrompt("기준서 본문", "피복두께가 뭐야?")
	if !strings.Contains(ap, "기준서 본문") || !strings.Contains(ap, "피복두께가 뭐야?") {
		t.Error("Answer prompt should carry both the context and the question")
	}
}

func TestConfigFromModel(t *testing.T) {
	mc := model.LLMConfig{
		Provider:        "azure",
		APIKey:          "k",
		AzureEndpoint:   "https://res.openai.azure.com",
		AzureAPIVersion: "2024-06-01",
		Deployment:      "gpt-4o",
		Timeout:         15,
		MaxTokens:       500,
	}

	got := ConfigFromModel(mc)
	if got.Provider != "azure" || got.AzureEndpoint != mc.AzureEndpoint || got.Deployment != "gpt-4o" {
		t.Errorf("ConfigFromModel = %+v", got)
	}
	if got.Timeout != 15 || got.MaxTokens != 500 {
		t.Errorf("Limits not carried over: %+v", got)
	}
}
