package model

import "testing"

func TestProject_IsDraft(t *testing.T) {
	if !(Project{Name: "unsaved"}).IsDraft() {
		t.Fatal("zero id should mark a draft")
	}
	if (Project{ID: 3, Name: "saved"}).IsDraft() {
		t.Fatal("assigned id should not mark a draft")
	}
}

func TestProject_CloneIsIndependent(t *testing.T) {
	p := Project{
		ID:    1,
		Name:  "P1",
		Tasks: []Task{{ID: 10, Title: "t1", Status: TaskPending}},
	}

	c := p.Clone()
	c.Tasks[0].Title = "changed"
	c.Tasks = append(c.Tasks, Task{Title: "t2", Status: TaskPending})

	if p.Tasks[0].Title != "t1" || len(p.Tasks) != 1 {
		t.Fatalf("clone mutation leaked into the original: %+v", p.Tasks)
	}
}
