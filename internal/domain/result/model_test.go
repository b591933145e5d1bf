package result

import "testing"

func intp(v int) *int { return &v }

func TestDeriveWinner(t *testing.T) {
	t.Parallel()

	const home = "Philadelphia Eagles"
	const away = "Dallas Cowboys"

	cases := []struct {
		name      string
		homeScore *int
		awayScore *int
		want      *string
	}{
		{"home wins", intp(24), intp(20), strp(home)},
		{"away wins", intp(20), intp(21), strp(away)},
		{"tie", intp(17), intp(17), strp(WinnerTie)},
		{"missing home score", nil, intp(21), nil},
		{"missing away score", intp(21), nil, nil},
		{"no scores", nil, nil, nil},
		{"zero zero is a tie", intp(0), intp(0), strp(WinnerTie)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveWinner(home, away, tc.homeScore, tc.awayScore)
			switch {
			case tc.want == nil && got != nil:
				t.Fatalf("expected nil winner, got %q", *got)
			case tc.want != nil && got == nil:
				t.Fatalf("expected winner %q, got nil", *tc.want)
			case tc.want != nil && *got != *tc.want:
				t.Fatalf("winner: got %q want %q", *got, *tc.want)
			}
		})
	}
}

func TestGameResult_Completed(t *testing.T) {
	t.Parallel()

	if (GameResult{GameCode: "g1"}).Completed() {
		t.Fatal("result without winner must not be completed")
	}
	if !(GameResult{GameCode: "g1", WinnerTeam: strp(WinnerTie)}).Completed() {
		t.Fatal("tie counts as completed")
	}
}

func strp(v string) *string { return &v }
