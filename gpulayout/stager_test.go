package gpulayout

import (
	"testing"

	"github.com/gogpu/tilemap"
)

func TestStage_FirstFrameUploadsEverything(t *testing.T) {
	var s Stager
	f := Stage(&s, testMap())

	if f.Uniform == nil || f.UserData == nil || f.Tiles == nil {
		t.Fatalf("first Stage left buffers empty: %+v", f)
	}
	if !f.Ready {
		t.Error("Frame.Ready = false for a map with an atlas")
	}
}

func TestStage_SkipsUnchanged(t *testing.T) {
	var s Stager
	m := testMap()
	Stage(&s, m)

	if f := Stage(&s, m); f.Changed() {
		t.Errorf("second Stage of a clean map changed buffers: %+v", f)
	}

	m.Edit(func(ix *tilemap.Indexer) { ix.Set(0, 0, 5) })
	f := Stage(&s, m)
	if f.Tiles == nil {
		t.Error("tile edit did not restage tiles")
	}
	if f.Uniform != nil || f.UserData != nil {
		t.Error("tile edit restaged unchanged uniform or user data")
	}

	m.SetTransform(tilemap.TranslateAffine(1, 2, 3))
	f = Stage(&s, m)
	if f.Uniform == nil || f.Tiles != nil {
		t.Errorf("transform change staged uniform=%v tiles=%v, want true false",
			f.Uniform != nil, f.Tiles != nil)
	}
}

func TestStage_IndependentOfDirtyFlag(t *testing.T) {
	var s Stager
	m := testMap()
	Stage(&s, m)

	// Another consumer clears the flag before this one sees the edit.
	m.Edit(func(ix *tilemap.Indexer) { ix.Set(1, 0, 7) })
	m.ClearDirty()
	if f := Stage(&s, m); f.Tiles == nil {
		t.Error("edit consumed elsewhere was not staged")
	}

	m.Edit(func(ix *tilemap.Indexer) { ix.Set(1, 0, 8) })
	Stage(&s, m)
	if !m.Dirty() {
		t.Error("Stage cleared the dirty flag")
	}
}

func TestStage_Reset(t *testing.T) {
	var s Stager
	m := testMap()
	Stage(&s, m)
	s.Reset()

	if f := Stage(&s, m); f.Uniform == nil || f.Tiles == nil {
		t.Error("Stage after Reset did not upload everything")
	}
}

func TestStage_NotReady(t *testing.T) {
	var s Stager
	m := tilemap.New(tilemap.U2(2, 2), nil, tilemap.V2(8, 8)).Build()
	if f := Stage(&s, m); f.Ready {
		t.Error("Frame.Ready = true before the atlas loaded")
	}
}
