package questionnaire

import "testing"

func TestCatalogIntegrity(t *testing.T) {
	count := 0
	seen := make(map[string]bool)
	for _, cat := range Catalog {
		if cat.Weight != CategoryWeights[cat.Letter] {
			t.Errorf("category %s weight %d disagrees with CategoryWeights %d",
				cat.Letter, cat.Weight, CategoryWeights[cat.Letter])
		}
		for _, q := range cat.Questions {
			if seen[q.ID] {
				t.Errorf("duplicate question id %s", q.ID)
			}
			seen[q.ID] = true
			if q.ID[:1] != cat.Letter {
				t.Errorf("question %s filed under category %s", q.ID, cat.Letter)
			}
			count++
		}
	}
	if count != TotalQuestions {
		t.Fatalf("catalog holds %d questions, TotalQuestions says %d", count, TotalQuestions)
	}

	sum := 0
	for _, w := range CategoryWeights {
		sum += w
	}
	if sum != 100 {
		t.Fatalf("category weights sum to %d, want 100", sum)
	}
}

func TestQuestionByID(t *testing.T) {
	q, ok := QuestionByID("C1")
	if !ok {
		t.Fatal("C1 should exist")
	}
	if q.Priority != PriorityHigh {
		t.Fatalf("C1 priority = %v, want high", q.Priority)
	}
	if _, ok := QuestionByID("Z9"); ok {
		t.Fatal("unknown id should not resolve")
	}
}

func TestMaxScoreCountsCategoriesOnce(t *testing.T) {
	cases := []struct {
		selected []string
		want     int
	}{
		{nil, 0},
		{[]string{"C1"}, 20},
		{[]string{"C1", "C2", "C3"}, 20},
		{[]string{"C1", "D1"}, 40},
		{[]string{"A1", "B1", "C1", "D1", "E1", "F1", "G1"}, 100},
	}
	for _, tc := range cases {
		if got := MaxScore(tc.selected); got != tc.want {
			t.Errorf("MaxScore(%v) = %d, want %d", tc.selected, got, tc.want)
		}
	}
}

func TestSelectedByCategoryPreservesOrder(t *testing.T) {
	got := SelectedByCategory([]string{"C4", "C1", "D1"})
	if len(got["C"]) != 2 || got["C"][0] != "C4" || got["C"][1] != "C1" {
		t.Fatalf("unexpected C group %v", got["C"])
	}
	if len(got["D"]) != 1 {
		t.Fatalf("unexpected D group %v", got["D"])
	}
}
