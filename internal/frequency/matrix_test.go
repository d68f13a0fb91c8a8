package frequency

import (
	"math/rand/v2"
	"reflect"
	"testing"
)

func TestAggregateExample(t *testing.T) {
	m := Aggregate([]Row{
		{Label: "10", Text: "chat chien chat"},
		{Label: "10", Text: "chien"},
		{Label: "20", Text: "chat"},
	})

	tests := []struct {
		label, token string
		want         int
	}{
		{"10", "chat", 2},
		{"10", "chien", 2},
		{"20", "chat", 1},
		{"20", "chien", 0},
		{"30", "chat", 0},
	}
	for _, tt := range tests {
		if got := m.Count(tt.label, tt.token); got != tt.want {
			t.Errorf("Count(%q, %q) = %d, want %d", tt.label, tt.token, got, tt.want)
		}
	}
	if !reflect.DeepEqual(m.Labels(), []string{"10", "20"}) {
		t.Fatalf("unexpected labels: %v", m.Labels())
	}
	if !reflect.DeepEqual(m.Tokens(), []string{"chat", "chien"}) {
		t.Fatalf("unexpected tokens: %v", m.Tokens())
	}
	if m.Total("10") != 4 {
		t.Fatalf("Total(10) = %d, want 4", m.Total("10"))
	}
}

func TestDenseFillsZero(t *testing.T) {
	m := Aggregate([]Row{
		{Label: "10", Text: "chat chien chat"},
		{Label: "10", Text: "chien"},
		{Label: "20", Text: "chat"},
	})
	dense := m.Dense()
	want := Dense{
		Labels: []string{"10", "20"},
		Tokens: []string{"chat", "chien"},
		Cells:  [][]int{{2, 2}, {1, 0}},
	}
	if !reflect.DeepEqual(dense, want) {
		t.Fatalf("Dense() = %+v, want %+v", dense, want)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	rows := []Row{
		{"10", "livre roman poche"},
		{"20", "piscine pompe"},
		{"10", "roman policier"},
		{"30", "console manette manette"},
		{"20", "pompe filtre piscine"},
		{"10", ""},
	}
	base := Aggregate(rows).Dense()

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 10; i++ {
		shuffled := append([]Row(nil), rows...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := Aggregate(shuffled).Dense(); !reflect.DeepEqual(got, base) {
			t.Fatalf("shuffle %d changed result: %+v vs %+v", i, got, base)
		}
	}
}

func TestAggregateTokenization(t *testing.T) {
	m := Aggregate([]Row{{Label: "x", Text: "jeu-video, jeu_video!  jeu"}})
	want := map[string]int{"jeu": 2, "video": 1, "jeu_video": 1}
	if got := m.Counts("x"); !reflect.DeepEqual(got, want) {
		t.Fatalf("Counts = %v, want %v", got, want)
	}
}

func TestEmptyLabelRegistered(t *testing.T) {
	m := Aggregate([]Row{{Label: "40", Text: ""}})
	if !reflect.DeepEqual(m.Labels(), []string{"40"}) {
		t.Fatalf("expected empty label registered, got %v", m.Labels())
	}
	if len(m.Dense().Cells[0]) != 0 {
		t.Fatal("expected empty row")
	}
}

func TestCountsReturnsCopy(t *testing.T) {
	m := Aggregate([]Row{{Label: "10", Text: "chat"}})
	counts := m.Counts("10")
	counts["chat"] = 99
	if m.Count("10", "chat") != 1 {
		t.Fatal("Counts must not expose internal state")
	}
}

func TestTopTies(t *testing.T) {
	m := Aggregate([]Row{{Label: "10", Text: "beta alpha gamma gamma delta"}})
	got := m.Top("10", 3)
	want := []TokenCount{{"gamma", 2}, {"alpha", 1}, {"beta", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Top = %v, want %v", got, want)
	}
	if len(m.Top("10", 0)) != 4 {
		t.Fatal("Top(0) should return every token")
	}
	if len(m.Top("missing", 3)) != 0 {
		t.Fatal("unknown label has no tokens")
	}
}

func TestDistinctive(t *testing.T) {
	m := Aggregate([]Row{
		{"10", "livre livre roman neuf"},
		{"20", "piscine neuf"},
		{"30", "console neuf"},
	})
	got := m.Distinctive("10", 5)
	if len(got) != 2 {
		t.Fatalf("expected shared token dropped, got %v", got)
	}
	if got[0].Term != "livre" || got[1].Term != "roman" {
		t.Fatalf("unexpected ranking: %v", got)
	}
	if m.Distinctive("missing", 5) != nil {
		t.Fatal("unknown label must return nil")
	}
}
