package cmd

import "testing"

func TestCommandTree(t *testing.T) {
	root := NewRootCmd()

	tests := [][]string{
		{"visualize", "grid"},
		{"visualize", "predictions"},
		{"eval", "predict"},
		{"eval", "report"},
	}
	for _, path := range tests {
		found, _, err := root.Find(path)
		if err != nil {
			t.Errorf("Expected command %v, got error %v", path, err)
			continue
		}
		if found.Name() != path[len(path)-1] {
			t.Errorf("Expected %s, got %s", path[len(path)-1], found.Name())
		}
	}

	if root.PersistentFlags().Lookup("verbose") == nil {
		t.Error("Expected persistent --verbose flag")
	}
}
