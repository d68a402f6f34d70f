package testfixtures

import "testing"

func TestFixturesGenerateUniqueIDs(t *testing.T) {
	first := NewEquipmentFixture()
	second := NewEquipmentFixture()
	if first.ID == second.ID {
		t.Fatalf("expected unique identifiers, got %q twice", first.ID)
	}
}

func TestFixtureConversionsCopyOptionalFields(t *testing.T) {
	fixture := NewEquipmentFixture(WithEquipmentNotes("belt replaced in Jan"))

	app := fixture.Application()
	stored := fixture.Persistence()

	*app.Notes = "mutated"
	if *fixture.Notes != "belt replaced in Jan" {
		t.Fatalf("expected the fixture untouched, got %q", *fixture.Notes)
	}
	if *stored.Notes != "belt replaced in Jan" {
		t.Fatalf("expected independent copies, got %q", *stored.Notes)
	}
}

func TestChecklistCompletedOption(t *testing.T) {
	at := ReferenceTime()
	fixture := NewChecklistItemFixture(WithChecklistCompleted("Jordan", at))

	if !fixture.Completed {
		t.Fatal("expected the item completed")
	}
	if fixture.CompletedBy == nil || *fixture.CompletedBy != "Jordan" {
		t.Fatalf("unexpected completed by %v", fixture.CompletedBy)
	}
	if fixture.CompletedAt == nil || !fixture.CompletedAt.Equal(at) {
		t.Fatalf("unexpected completed at %v", fixture.CompletedAt)
	}
}

func TestMaintenanceTargetOptions(t *testing.T) {
	equipment := NewMaintenanceFixture(WithMaintenanceEquipment("eq-1", "Treadmill A"))
	if equipment.Zone != nil || equipment.EquipmentID == nil {
		t.Fatalf("expected an equipment target, got %#v", equipment)
	}

	zone := NewMaintenanceFixture(WithMaintenanceZone("Cardio floor"))
	if zone.EquipmentID != nil || zone.Zone == nil || *zone.Zone != "Cardio floor" {
		t.Fatalf("expected a zone target, got %#v", zone)
	}
}
