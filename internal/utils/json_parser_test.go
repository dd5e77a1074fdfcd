package utils

import (
	"testing"
)

type suggestionPayload struct {
	Filters struct {
		MinCapacity *int     `json:"minCapacity"`
		Building    *string  `json:"building"`
		Amenities   []string `json:"amenities"`
	} `json:"filters"`
	Reasoning string `json:"reasoning"`
}

func TestParseAIJSON(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantCapacity  int
		wantReasoning string
		wantErr       bool
	}{
		{
			name:          "Pure JSON",
			input:         `{"filters": {"minCapacity": 10}, "reasoning": "group of ten"}`,
			wantCapacity:  10,
			wantReasoning: "group of ten",
		},
		{
			name: "JSON in markdown code block",
			input: "```json\n" +
				`{"filters": {"minCapacity": 4}, "reasoning": "small group"}` + "\n```",
			wantCapacity:  4,
			wantReasoning: "small group",
		},
		{
			name:          "JSON with surrounding text",
			input:         `Sure! Here it is: {"filters": {"minCapacity": 20}, "reasoning": "seminar"} Hope that helps.`,
			wantCapacity:  20,
			wantReasoning: "seminar",
		},
		{
			name:          "JSON with trailing comma",
			input:         `{"filters": {"minCapacity": 6,}, "reasoning": "pod",}`,
			wantCapacity:  6,
			wantReasoning: "pod",
		},
		{
			name:          "JSON with unquoted keys",
			input:         `{filters: {minCapacity: 30}, reasoning: "class"}`,
			wantCapacity:  30,
			wantReasoning: "class",
		},
		{
			name:          "JSON with single quotes",
			input:         `{'filters': {'minCapacity': 8}, 'reasoning': 'study'}`,
			wantCapacity:  8,
			wantReasoning: "study",
		},
		{
			name:          "Apostrophe inside string survives",
			input:         `{"filters": {"minCapacity": 2}, "reasoning": "it's quiet"}`,
			wantCapacity:  2,
			wantReasoning: "it's quiet",
		},
		{
			name:          "Colon and comma inside string value",
			input:         `{"filters": {"minCapacity": 5}, "reasoning": "Room for 5, note: needs projector",}`,
			wantCapacity:  5,
			wantReasoning: "Room for 5, note: needs projector",
		},
		{
			name:          "Bracket after comma inside string value",
			input:         `{filters: {minCapacity: 3,}, reasoning: "pick one of a, }b or c",}`,
			wantCapacity:  3,
			wantReasoning: "pick one of a, }b or c",
		},
		{
			name:    "Empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "Invalid JSON",
			input:   "not json at all",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got suggestionPayload
			err := ParseAIJSON(tt.input, &got)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAIJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Filters.MinCapacity == nil || *got.Filters.MinCapacity != tt.wantCapacity {
				t.Errorf("minCapacity = %v, want %d", got.Filters.MinCapacity, tt.wantCapacity)
			}
			if got.Reasoning != tt.wantReasoning {
				t.Errorf("reasoning = %q, want %q", got.Reasoning, tt.wantReasoning)
			}
		})
	}
}

func TestExtractFromMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "JSON code block with json tag",
			input: "```json\n{\"test\": true}\n```",
			want:  `{"test": true}`,
		},
		{
			name:  "JSON code block without tag",
			input: "```\n{\"test\": true}\n```",
			want:  `{"test": true}`,
		},
		{
			name:  "Code block that is not JSON",
			input: "```\nhello\n```",
			want:  "",
		},
		{
			name:  "No code block",
			input: `{"test": true}`,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractFromMarkdown(tt.input)
			if got != tt.want {
				t.Errorf("extractFromMarkdown() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractBalancedBraces(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Simple object", input: `{"a": 1}`, want: `{"a": 1}`},
		{name: "Nested objects", input: `{"a": {"b": 2}} tail`, want: `{"a": {"b": 2}}`},
		{name: "Braces inside string", input: `{"text": "Hello {world}"}`, want: `{"text": "Hello {world}"}`},
		{name: "Escaped quote inside string", input: `{"text": "say \"}\""}`, want: `{"text": "say \"}\""}`},
		{name: "Unbalanced", input: `{"a": {"b": 2}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractBalancedBraces(tt.input, '{', '}')
			if got != tt.want {
				t.Errorf("extractBalancedBraces() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRepairSyntax(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Bare keys", input: `{a: 1, b_2: {c: 3}}`, want: `{"a": 1, "b_2": {"c": 3}}`},
		{name: "Trailing commas", input: `{"a": [1, 2,], "b": 3 ,}`, want: `{"a": [1, 2], "b": 3 }`},
		{name: "Key-like text in string", input: `{"r": "x, note: y"}`, want: `{"r": "x, note: y"}`},
		{name: "Comma before brace in string", input: `{"r": "a, }"}`, want: `{"r": "a, }"}`},
		{name: "Escaped quote in string", input: `{"r": "say \", k: v"}`, want: `{"r": "say \", k: v"}`},
		{name: "Single-quoted value", input: `{k: 'a, b: c'}`, want: `{"k": 'a, b: c'}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repairSyntax(tt.input); got != tt.want {
				t.Errorf("repairSyntax() = %v, want %v", got, tt.want)
			}
		})
	}
}
