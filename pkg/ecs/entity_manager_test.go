package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
	if em.Count() != 2 {
		t.Errorf("Expected 2 entities, got %d", em.Count())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}

	// 泛型版本
	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok || pos != retrieved {
		t.Error("Generic GetComponent should return the same pointer")
	}
	if _, ok := GetComponent[*testVelocityComponent](em, id); ok {
		t.Error("Missing component should not be found")
	}
}

func TestDestroyIsDeferredUntilSweep(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	em.DestroyEntity(id)
	em.DestroyEntity(id) // 重复标记无害

	if !em.IsMarked(id) {
		t.Error("Entity should be marked")
	}
	if em.IsAlive(id) {
		t.Error("Marked entity should not be alive")
	}
	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("Components should survive until the sweep")
	}

	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("Expected 1 removed entity, got %d", removed)
	}
	if em.Exists(id) {
		t.Error("Entity should be gone after the sweep")
	}
	if em.IsMarked(id) {
		t.Error("Mark set should be cleared after the sweep")
	}
}

func TestSweepPreservesCreationOrder(t *testing.T) {
	em := NewEntityManager()
	ids := make([]EntityID, 6)
	for i := range ids {
		ids[i] = em.CreateEntity()
		em.AddComponent(ids[i], &testPositionComponent{X: float64(i)})
	}

	em.DestroyEntity(ids[1])
	em.DestroyEntity(ids[4])
	em.RemoveMarkedEntities()

	want := []EntityID{ids[0], ids[2], ids[3], ids[5]}
	got := em.Entities()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Entities() = %v, want %v", got, want)
	}

	withPos := GetEntitiesWith1[*testPositionComponent](em)
	if !reflect.DeepEqual(withPos, want) {
		t.Errorf("GetEntitiesWith1 = %v, want %v", withPos, want)
	}
}

func TestGetEntitiesWithMultipleComponents(t *testing.T) {
	em := NewEntityManager()

	a := em.CreateEntity()
	em.AddComponent(a, &testPositionComponent{})
	em.AddComponent(a, &testVelocityComponent{})

	b := em.CreateEntity()
	em.AddComponent(b, &testPositionComponent{})

	tests := []struct {
		name string
		got  []EntityID
		want []EntityID
	}{
		{"position only", GetEntitiesWith1[*testPositionComponent](em), []EntityID{a, b}},
		{"position and velocity", GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em), []EntityID{a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestEntitiesReturnsCopy(t *testing.T) {
	em := NewEntityManager()
	em.CreateEntity()
	snapshot := em.Entities()

	// 遍历期间创建新实体不影响快照
	em.CreateEntity()
	if len(snapshot) != 1 {
		t.Errorf("Snapshot should not grow, got len %d", len(snapshot))
	}
}

func TestClear(t *testing.T) {
	em := NewEntityManager()
	first := em.CreateEntity()
	em.DestroyEntity(first)
	em.Clear()

	if em.Count() != 0 {
		t.Errorf("Expected 0 entities after Clear, got %d", em.Count())
	}
	if em.IsMarked(first) {
		t.Error("Clear should reset marks")
	}
	if next := em.CreateEntity(); next == first {
		t.Error("IDs must not be reused after Clear")
	}
}
