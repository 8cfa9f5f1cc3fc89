package register_repo

import "testing"

func TestDispatchOrderClause(t *testing.T) {
	const fallback = "dispatch_date DESC, created_at DESC"

	tests := []struct {
		name    string
		orderBy string
		want    string
	}{
		{"empty falls back", "", fallback},
		{"single column", "quantity DESC", "quantity DESC"},
		{"bare column", "destination", "destination"},
		{"comma joined", "dispatch_date ASC, created_at ASC", "dispatch_date ASC, created_at ASC"},
		{"unknown column falls back", "dispatched_by DESC", fallback},
		{"garbage falls back", "quantity; DELETE FROM reg_dispatches", fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dispatchOrderClause(tt.orderBy); got != tt.want {
				t.Errorf("dispatchOrderClause(%q) = %q, want %q", tt.orderBy, got, tt.want)
			}
		})
	}
}
