package kcsc

import "testing"

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text passes through",
			input: "철근의 최소 피복두께는 40mm이다.",
			want:  "철근의 최소 피복두께는 40mm이다.",
		},
		{
			name:  "inline tags keep the line together",
			input: "<p>Applies to <b>reinforced concrete</b> members</p>",
			want:  "Applies to reinforced concrete members",
		},
		{
			name:  "block boundaries become line breaks",
			input: "<div>첫째 줄</div><div>둘째 줄</div>",
			want:  "첫째 줄\n둘째 줄",
		},
		{
			name:  "br becomes a line break",
			input: "위<br>아래",
			want:  "위\n아래",
		},
		{
			name:  "list items split into lines",
			input: "<ul><li>항목 1</li><li>항목 2</li></ul>",
			want:  "항목 1\n항목 2",
		},
		{
			name:  "script and style content dropped",
			input: "<p>본문</p><script>alert(1)</script><style>p{}</style>",
			want:  "본문",
		},
		{
			name:  "blank lines collapsed",
			input: "<p>하나</p><p>  </p><p>둘</p>",
			want:  "하나\n둘",
		},
		{
			name:  "table cells on their own lines",
			input: "<table><tr><td>가</td><td>나</td></tr></table>",
			want:  "가\n나",
		},
		{
			name:  "angle bracket without closing pair passes through",
			input: "두께 < 40mm",
			want:  "두께 < 40mm",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.input); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
