package normalize

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeEmotionPayload(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantKind  PayloadKind
		wantItems int
	}{
		{"flat list", `[{"label":"joy","score":0.9},{"label":"fear","score":0.1}]`, PayloadFlatList, 2},
		{"nested list", `[[{"label":"joy","score":0.9},{"label":"fear","score":0.1}]]`, PayloadNestedList, 2},
		{"nested empty inner", `[[]]`, PayloadNestedList, 0},
		{"empty list", `[]`, PayloadUnrecognized, 0},
		{"object", `{"label":"joy","score":0.9}`, PayloadUnrecognized, 0},
		{"list of numbers", `[1,2,3]`, PayloadUnrecognized, 0},
		{"not json", `<html>busy</html>`, PayloadUnrecognized, 0},
		{"empty body", ``, PayloadUnrecognized, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeEmotionPayload([]byte(tt.body))
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if len(got.Items) != tt.wantItems {
				t.Errorf("len(Items) = %d, want %d", len(got.Items), tt.wantItems)
			}
		})
	}
}

func TestEmotion_FlatList(t *testing.T) {
	body := `[{"label":"joy","score":0.8123},{"label":"sadness","score":0.05},{"label":"fear","score":0.1377}]`

	got := Emotion([]byte(body))
	if got.Status != StatusOK {
		t.Fatalf("Status = %v, want ok (err %v)", got.Status, got.Err)
	}

	want := EmotionDistribution{
		{Label: "joy", Score: 0.8123},
		{Label: "sadness", Score: 0.05},
		{Label: "fear", Score: 0.1377},
	}
	if len(got.Value) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got.Value), len(want))
	}
	for i, e := range want {
		if got.Value[i] != e {
			t.Errorf("entry[%d] = %+v, want %+v", i, got.Value[i], e)
		}
	}
}

func TestEmotion_NestedMatchesFlat(t *testing.T) {
	entries := `{"label":"joy","score":0.7},{"label":"surprise","score":0.2},{"label":"neutral","score":0.1}`

	flat := Emotion([]byte("[" + entries + "]"))
	nested := Emotion([]byte("[[" + entries + "]]"))

	if flat.Status != StatusOK || nested.Status != StatusOK {
		t.Fatalf("statuses = %v / %v, want ok / ok", flat.Status, nested.Status)
	}

	flatMap := flat.Value.Map()
	nestedMap := nested.Value.Map()
	if len(flatMap) != len(nestedMap) {
		t.Fatalf("flat has %d labels, nested has %d", len(flatMap), len(nestedMap))
	}
	for label, score := range flatMap {
		if nestedMap[label] != score {
			t.Errorf("label %q: nested %v, flat %v", label, nestedMap[label], score)
		}
	}
}

func TestEmotion_NoData(t *testing.T) {
	for _, body := range []string{`[]`, `[[]]`, `{"unexpected":true}`, `"text"`, `null`} {
		got := Emotion([]byte(body))
		if got.Status != StatusNotFound {
			t.Errorf("Emotion(%q) Status = %v, want not_found", body, got.Status)
		}
	}
}

func TestEmotion_UnparseableBody(t *testing.T) {
	for _, body := range []string{`not json`, `<html>busy</html>`, ``, `[{"label":"joy"`} {
		got := Emotion([]byte(body))
		if got.Status != StatusProviderError {
			t.Errorf("Emotion(%q) Status = %v, want provider_error", body, got.Status)
		}
		if !errors.Is(got.Err, ErrUnparseable) {
			t.Errorf("Emotion(%q) Err = %v, want ErrUnparseable", body, got.Err)
		}
	}
}

func TestEmotion_ProviderErrorObject(t *testing.T) {
	got := Emotion([]byte(`{"error":"Model is currently loading","estimated_time":20}`))
	if got.Status != StatusProviderError {
		t.Fatalf("Status = %v, want provider_error", got.Status)
	}
	if !strings.Contains(got.Err.Error(), "Model is currently loading") {
		t.Errorf("Err = %v, want provider message", got.Err)
	}
}

func TestEmotion_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing score", `[{"label":"joy"}]`},
		{"missing label", `[{"score":0.4}]`},
		{"score out of range", `[{"label":"joy","score":1.5}]`},
		{"wrong score type", `[{"label":"joy","score":"high"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Emotion([]byte(tt.body))
			if got.Status != StatusProviderError {
				t.Fatalf("Status = %v, want provider_error", got.Status)
			}
			if !errors.Is(got.Err, ErrMalformedResponse) {
				t.Errorf("Err = %v, want ErrMalformedResponse", got.Err)
			}
		})
	}
}

func TestEmotion_RepeatedLabelKeepsPosition(t *testing.T) {
	got := Emotion([]byte(`[{"label":"joy","score":0.2},{"label":"fear","score":0.3},{"label":"joy","score":0.5}]`))
	if got.Status != StatusOK {
		t.Fatalf("Status = %v, want ok", got.Status)
	}
	if len(got.Value) != 2 || got.Value[0].Label != "joy" || got.Value[0].Score != 0.5 {
		t.Errorf("Value = %+v, want joy first with 0.5", got.Value)
	}
}

func TestEmotionDistribution_Top(t *testing.T) {
	d := EmotionDistribution{{"calm", 0.3}, {"joy", 0.6}, {"awe", 0.6}}
	top, ok := d.Top()
	if !ok || top.Label != "joy" {
		t.Errorf("Top() = %+v, %v; want joy", top, ok)
	}
	if _, ok := (EmotionDistribution{}).Top(); ok {
		t.Error("Top() on empty distribution reported ok")
	}
}

func TestMedia(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		kind       MediaKind
		fields     []string
		wantStatus Status
		wantURL    string
	}{
		{
			name:       "image first hit",
			body:       `{"total":2,"hits":[{"largeImageURL":"https://img/1.jpg","user":"ann"},{"largeImageURL":"https://img/2.jpg"}]}`,
			kind:       MediaImage,
			fields:     ImageFields,
			wantStatus: StatusOK,
			wantURL:    "https://img/1.jpg",
		},
		{
			name:       "image secondary field",
			body:       `{"hits":[{"webformatURL":"https://img/web.jpg"}]}`,
			kind:       MediaImage,
			fields:     ImageFields,
			wantStatus: StatusOK,
			wantURL:    "https://img/web.jpg",
		},
		{
			name:       "audio primary field",
			body:       `{"hits":[{"audio":"https://snd/full.mp3","preview":"https://snd/short.mp3"}]}`,
			kind:       MediaAudio,
			fields:     AudioFields,
			wantStatus: StatusOK,
			wantURL:    "https://snd/full.mp3",
		},
		{
			name:       "audio preview fallback",
			body:       `{"hits":[{"audio":"","preview":"https://snd/short.mp3"}]}`,
			kind:       MediaAudio,
			fields:     AudioFields,
			wantStatus: StatusOK,
			wantURL:    "https://snd/short.mp3",
		},
		{
			name:       "empty hits",
			body:       `{"total":0,"hits":[]}`,
			kind:       MediaImage,
			fields:     ImageFields,
			wantStatus: StatusNotFound,
		},
		{
			name:       "field absent",
			body:       `{"hits":[{"id":12}]}`,
			kind:       MediaAudio,
			fields:     AudioFields,
			wantStatus: StatusNotFound,
		},
		{
			name:       "html body",
			body:       `<!DOCTYPE html><html><body>Service Unavailable</body></html>`,
			kind:       MediaAudio,
			fields:     AudioFields,
			wantStatus: StatusUnavailable,
		},
		{
			name:       "object without hits",
			body:       `{"message":"moved"}`,
			kind:       MediaImage,
			fields:     ImageFields,
			wantStatus: StatusUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Media([]byte(tt.body), tt.kind, "ocean", tt.fields...)
			if got.Status != tt.wantStatus {
				t.Fatalf("Status = %v, want %v (err %v)", got.Status, tt.wantStatus, got.Err)
			}
			if tt.wantStatus != StatusOK {
				return
			}
			if got.Value.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", got.Value.URL, tt.wantURL)
			}
			if got.Value.Keyword != "ocean" || got.Value.Kind != tt.kind {
				t.Errorf("Value = %+v, want keyword ocean and kind %v", got.Value, tt.kind)
			}
		})
	}
}

func TestMedia_UnavailableWrapsUnparseable(t *testing.T) {
	got := Media([]byte("oops"), MediaImage, "x", ImageFields...)
	if !errors.Is(got.Err, ErrUnparseable) {
		t.Errorf("Err = %v, want ErrUnparseable", got.Err)
	}
}

func TestQuotes(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus Status
		want       Quote
	}{
		{
			name:       "first quote",
			body:       `[{"quote":"Dreams are the seedlings of realities.","author":"James Allen","category":"dreams"}]`,
			wantStatus: StatusOK,
			want:       Quote{Text: "Dreams are the seedlings of realities.", Author: "James Allen", Category: "dreams"},
		},
		{
			name:       "blank text skipped",
			body:       `[{"quote":"  ","author":"A"},{"quote":"Keep going.","author":""}]`,
			wantStatus: StatusOK,
			want:       Quote{Text: "Keep going.", Author: "Unknown"},
		},
		{"empty list", `[]`, StatusNotFound, Quote{}},
		{"object body", `{"error":"bad key"}`, StatusProviderError, Quote{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quotes([]byte(tt.body))
			if got.Status != tt.wantStatus {
				t.Fatalf("Status = %v, want %v", got.Status, tt.wantStatus)
			}
			if got.Value != tt.want {
				t.Errorf("Value = %+v, want %+v", got.Value, tt.want)
			}
		})
	}
}

func TestGeneratedReflection_Truncates(t *testing.T) {
	long := strings.Repeat("abcdefghij", 100)
	body := `[{"generated_text":"` + long + `"}]`

	got := GeneratedReflection([]byte(body))
	if got.Status != StatusOK {
		t.Fatalf("Status = %v, want ok", got.Status)
	}
	if got.Value.Text != long[:400] {
		t.Errorf("Text has length %d, want exactly the first 400 characters", len(got.Value.Text))
	}
	if strings.HasSuffix(got.Value.Text, "...") || strings.HasSuffix(got.Value.Text, "…") {
		t.Error("Text should not end with an ellipsis")
	}
}

func TestGeneratedReflection_Placeholder(t *testing.T) {
	for _, body := range []string{`[]`, `[{"score":1}]`, `[{"generated_text":""}]`} {
		got := GeneratedReflection([]byte(body))
		if got.Status != StatusNotFound || !got.Fallback {
			t.Errorf("GeneratedReflection(%q) = %v fallback=%v, want not_found with fallback", body, got.Status, got.Fallback)
		}
		if got.Value.Text != PlaceholderReflection {
			t.Errorf("GeneratedReflection(%q) text = %q, want placeholder", body, got.Value.Text)
		}
	}
}

func TestGeneratedReflection_ProviderError(t *testing.T) {
	got := GeneratedReflection([]byte(`{"error":"Rate limit reached"}`))
	if got.Status != StatusProviderError {
		t.Fatalf("Status = %v, want provider_error", got.Status)
	}

	got = GeneratedReflection([]byte(`<html></html>`))
	if got.Status != StatusProviderError || !errors.Is(got.Err, ErrUnparseable) {
		t.Errorf("Status = %v err = %v, want provider_error wrapping ErrUnparseable", got.Status, got.Err)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 5, "hello"},
		{"ünïcödé", 3, "ünï"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestResultHelpers(t *testing.T) {
	nc := NotConfigured[Quote]()
	if nc.Status != StatusNotConfigured || !errors.Is(nc.Err, ErrNotConfigured) {
		t.Errorf("NotConfigured() = %+v", nc)
	}
	if nc.Usable() {
		t.Error("NotConfigured result should not be usable")
	}

	fb := nc.WithFallback(Quote{Text: "x", Author: "y"})
	if !fb.Usable() || fb.Status != StatusNotConfigured || fb.Value.Text != "x" {
		t.Errorf("WithFallback() = %+v", fb)
	}
}
