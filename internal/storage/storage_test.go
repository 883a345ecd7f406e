package storage

import (
	"reflect"
	"testing"
)

func openBackends(t *testing.T) map[string]Store {
	t.Helper()
	out := map[string]Store{}
	for _, b := range []string{BackendMemory, BackendSQLite} {
		s, err := Open(b)
		if err != nil {
			t.Fatalf("Open(%q): %v", b, err)
		}
		t.Cleanup(func() { s.Close() })
		out[b] = s
	}
	return out
}

func TestAddTaskAppendsInOrder(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.AddTask("2024-03-05", "Buy milk"); err != nil {
				t.Fatalf("AddTask: %v", err)
			}
			if err := s.AddTask("2024-03-05", "Call dentist"); err != nil {
				t.Fatalf("AddTask: %v", err)
			}
			if err := s.AddTask("2024-03-05", "Buy milk"); err != nil {
				t.Fatalf("AddTask: %v", err)
			}
			got, err := s.TasksFor("2024-03-05")
			if err != nil {
				t.Fatalf("TasksFor: %v", err)
			}
			want := []string{"Buy milk", "Call dentist", "Buy milk"}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("TasksFor = %q, want %q", got, want)
			}
		})
	}
}

func TestAddTaskIgnoresBlankInput(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			for _, tc := range []struct{ key, text string }{
				{"2024-03-05", ""},
				{"2024-03-05", "   \t\n"},
				{"", "Buy milk"},
			} {
				if err := s.AddTask(tc.key, tc.text); err != nil {
					t.Fatalf("AddTask(%q, %q): %v", tc.key, tc.text, err)
				}
			}
			for _, key := range []string{"2024-03-05", ""} {
				got, err := s.TasksFor(key)
				if err != nil {
					t.Fatalf("TasksFor: %v", err)
				}
				if len(got) != 0 {
					t.Fatalf("TasksFor(%q) = %q, want empty", key, got)
				}
			}
		})
	}
}

func TestTasksForUnknownKeyIsEmptyNotNil(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.TasksFor("1999-01-01")
			if err != nil {
				t.Fatalf("TasksFor: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Fatalf("TasksFor = %#v, want empty non-nil slice", got)
			}
		})
	}
}

func TestTasksForReturnsCopy(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			s.AddTask("2024-03-05", "Buy milk")
			got, _ := s.TasksFor("2024-03-05")
			got[0] = "changed"
			again, _ := s.TasksFor("2024-03-05")
			if again[0] != "Buy milk" {
				t.Fatalf("store aliased by caller: %q", again)
			}
		})
	}
}

func TestCountByKey(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			s.AddTask("2024-03-05", "a")
			s.AddTask("2024-03-05", "b")
			s.AddTask("2024-03-07", "c")
			s.AddTask("2024-04-01", "d")
			got, err := s.CountByKey([]string{"2024-03-05", "2024-03-06", "2024-03-07"})
			if err != nil {
				t.Fatalf("CountByKey: %v", err)
			}
			want := map[string]int{"2024-03-05": 2, "2024-03-07": 1}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("CountByKey = %v, want %v", got, want)
			}
			empty, err := s.CountByKey(nil)
			if err != nil || len(empty) != 0 {
				t.Fatalf("CountByKey(nil) = %v, %v", empty, err)
			}
		})
	}
}

func TestSQLiteStoresAreIsolated(t *testing.T) {
	a, err := OpenSQLite()
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer a.Close()
	b, err := OpenSQLite()
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer b.Close()

	a.AddTask("2024-03-05", "Buy milk")
	got, err := b.TasksFor("2024-03-05")
	if err != nil {
		t.Fatalf("TasksFor: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("second store sees %q", got)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("postgres"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
