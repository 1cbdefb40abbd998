package nav

import "testing"

func TestWrapClusterStaysInRange(t *testing.T) {
	for count := 1; count <= 7; count++ {
		for id := 0; id < count; id++ {
			for _, delta := range []int{-1, 1} {
				got := WrapCluster(count, id, delta)
				if got < 0 || got >= count {
					t.Fatalf("WrapCluster(%d, %d, %d) = %d out of range", count, id, delta, got)
				}
				if want := (count + id + delta) % count; got != want {
					t.Fatalf("WrapCluster(%d, %d, %d) = %d, want %d", count, id, delta, got, want)
				}
			}
		}
	}
}

func TestWrapClusterEnds(t *testing.T) {
	if got := WrapCluster(10, 0, -1); got != 9 {
		t.Fatalf("expected wrap to 9, got %d", got)
	}
	if got := WrapCluster(10, 9, 1); got != 0 {
		t.Fatalf("expected wrap to 0, got %d", got)
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct{ count, id, want int }{
		{5, -1, 4},
		{5, 12, 2},
		{5, -11, 4},
		{0, 3, 0},
		{1, 9, 0},
	}
	for _, tc := range cases {
		if got := Normalize(tc.count, tc.id); got != tc.want {
			t.Fatalf("Normalize(%d, %d) = %d, want %d", tc.count, tc.id, got, tc.want)
		}
	}
}
