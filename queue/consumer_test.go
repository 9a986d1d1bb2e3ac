package queue

import (
	"context"
	"errors"
	"testing"
)

type testMsg struct {
	Name string `json:"name"`
}

func TestTypedHandler(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		alwaysMark bool
		processErr error
		valid      bool
		wantMark   bool
		wantErr    bool
		wantCalls  int
	}{
		{"valid message processed", `{"name":"a"}`, false, nil, true, true, false, 1},
		{"process error retried", `{"name":"a"}`, false, errors.New("x"), true, false, true, 1},
		{"invalid json skipped when marking", `{nope`, true, nil, true, true, false, 0},
		{"invalid json retried otherwise", `{nope`, false, nil, true, false, false, 0},
		{"validation failure marked", `{"name":"a"}`, true, nil, false, true, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			h := &TypedHandler[testMsg]{
				AlwaysMark: tt.alwaysMark,
				Validate:   func(m *testMsg) bool { return tt.valid },
				Process: func(ctx context.Context, m *testMsg) error {
					calls++
					return tt.processErr
				},
			}
			mark, err := h.HandleMessage(context.Background(), []byte(tt.payload))
			if mark != tt.wantMark {
				t.Errorf("mark = %v, want %v", mark, tt.wantMark)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("process called %d times, want %d", calls, tt.wantCalls)
			}
		})
	}
}
