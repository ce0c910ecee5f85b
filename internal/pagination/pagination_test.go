package pagination

import "testing"

func TestPageRequest(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name       string
		req        PageRequest
		wantOffset int
		wantSize   int
	}{
		{"defaults", PageRequest{}, 0, DefaultLimit},
		{"explicit", PageRequest{Skip: 20, Limit: intPtr(10)}, 20, 10},
		{"limit above max is clamped", PageRequest{Limit: intPtr(500)}, 0, MaxLimit},
		{"limit below min is clamped", PageRequest{Limit: intPtr(0)}, 0, 1},
		{"negative skip", PageRequest{Skip: -5}, 0, DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.Offset(); got != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", got, tt.wantOffset)
			}
			if got := tt.req.Size(); got != tt.wantSize {
				t.Errorf("Size() = %d, want %d", got, tt.wantSize)
			}
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[string](nil, New(10, 5), 42)

	if resp.Data == nil || len(resp.Data) != 0 {
		t.Errorf("expected empty non-nil data, got %v", resp.Data)
	}
	if resp.Skip != 10 || resp.Limit != 5 || resp.TotalItems != 42 {
		t.Errorf("unexpected metadata: %+v", resp)
	}
}
