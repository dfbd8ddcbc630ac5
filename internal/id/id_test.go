package id

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{FormatUser(1), "U-00001"},
		{FormatWorkspace(42), "W-00042"},
		{FormatBoard(7), "B-00007"},
		{FormatList(123), "L-00123"},
		{FormatCard(99999), "C-99999"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %s, want %s", tt.got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		id      string
		typ     Type
		seq     int
		wantErr bool
	}{
		{"U-00001", TypeUser, 1, false},
		{"W-00042", TypeWorkspace, 42, false},
		{"B-00007", TypeBoard, 7, false},
		{"L-00123", TypeList, 123, false},
		{"C-99999", TypeCard, 99999, false},
		{"  C-00001  ", TypeCard, 1, false},
		{"X-00001", "", 0, true},
		{"C-1", "", 0, true},
		{"C-000001", "", 0, true},
		{"", "", 0, true},
	}

	for _, tt := range tests {
		typ, seq, err := Parse(tt.id)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got none", tt.id)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tt.id, err)
			continue
		}
		if typ != tt.typ || seq != tt.seq {
			t.Errorf("Parse(%q) = (%s, %d), want (%s, %d)", tt.id, typ, seq, tt.typ, tt.seq)
		}
	}
}

func TestIsUUID(t *testing.T) {
	if !IsUUID("a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d") {
		t.Error("expected valid UUID to be recognized")
	}
	if !IsUUID("A1B2C3D4-E5F6-4A7B-8C9D-0E1F2A3B4C5D") {
		t.Error("expected uppercase UUID to be recognized")
	}
	if IsUUID("C-00001") {
		t.Error("friendly ID should not be a UUID")
	}
	if IsUUID("not-a-uuid") {
		t.Error("garbage should not be a UUID")
	}
}

func TestIsFriendlyID(t *testing.T) {
	if !IsFriendlyID("B-00001") {
		t.Error("expected B-00001 to be a friendly ID")
	}
	if IsFriendlyID("a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d") {
		t.Error("UUID should not be a friendly ID")
	}
}
