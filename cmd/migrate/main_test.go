package main

import "testing"

func TestDownSteps(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr bool
	}{
		{nil, 1, false},
		{[]string{"3"}, 3, false},
		{[]string{"0"}, 0, true},
		{[]string{"-2"}, 0, true},
		{[]string{"all"}, 0, true},
	}
	for _, tt := range tests {
		got, err := downSteps(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("downSteps(%v): err = %v, wantErr %v", tt.args, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("downSteps(%v) = %d, want %d", tt.args, got, tt.want)
		}
	}
}

func TestRunRequiresCommand(t *testing.T) {
	if err := run(nil); err == nil {
		t.Fatal("expected usage error")
	}
}
