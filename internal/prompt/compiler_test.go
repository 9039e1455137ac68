package prompt

import (
	"strings"
	"testing"

	"studio/internal/domain"
)

func TestCompileCustomPoseBranch(t *testing.T) {
	s := domain.DefaultSettings()
	s.ShotPose = domain.CustomPose
	s.Action = "walking through the rain"
	s.Gaze = "Looking away"

	var c Compiler
	out := c.Compile(s)

	if !strings.Contains(out, "The subject is walking through the rain.") {
		t.Fatalf("missing action sentence: %s", out)
	}
	if !strings.Contains(out, "Gaze: looking away.") {
		t.Fatalf("missing gaze sentence: %s", out)
	}
}

func TestCompileCanonicalPoseIgnoresActionAndGaze(t *testing.T) {
	s := domain.DefaultSettings()
	s.ShotPose = domain.ShotPoses[6].Name
	s.Action = "should not appear"
	s.Gaze = "should not appear either"

	var c Compiler
	out := c.Compile(s)

	if !strings.Contains(out, "Shot composition: "+domain.ShotPoses[6].Value+".") {
		t.Fatalf("canonical pose text missing: %s", out)
	}
	if strings.Contains(out, "should not appear") {
		t.Fatalf("action or gaze leaked into canonical pose branch: %s", out)
	}
}

func TestCompileSentenceOrder(t *testing.T) {
	s := domain.DefaultSettings()
	var c Compiler
	out := c.Compile(s)

	markers := []string{
		"A photorealistic",
		"is wearing",
		"Hair:",
		"The scene is set against",
		"running away from something",
		"Captured on",
		"Lighting:",
		"Skin:",
		"Style notes:",
		"aspect ratio",
	}
	last := -1
	for _, m := range markers {
		idx := strings.Index(out, m)
		if idx < 0 {
			t.Fatalf("marker %q missing from prompt: %s", m, out)
		}
		if idx < last {
			t.Fatalf("marker %q out of order in prompt: %s", m, out)
		}
		last = idx
	}
}

func TestCompileFlowingSkirt(t *testing.T) {
	s := domain.DefaultSettings()
	s.Gender = "female"
	s.SetDressStyle("Hanfu")
	s.ShotPose = domain.CustomPose

	var c Compiler
	if !strings.Contains(c.Compile(s), "flowing dramatically") {
		t.Fatal("flowing skirt clause missing for female subject in flowing garment")
	}

	s.Gender = "male"
	if strings.Contains(c.Compile(s), "flowing dramatically") {
		t.Fatal("flowing skirt clause should not apply to male subject")
	}

	s.Gender = "female"
	s.SetDressStyle("Cyberpunk Techwear Jacket")
	if strings.Contains(c.Compile(s), "flowing dramatically") {
		t.Fatal("flowing skirt clause should not apply to non-flowing garment")
	}
}

func TestCompileFlowingSkirtCanonicalPose(t *testing.T) {
	s := domain.DefaultSettings()
	s.Gender = "female"
	s.SetDressStyle("Indian Saree")
	s.ShotPose = domain.ShotPoses[1].Name

	if strings.Contains((Compiler{}).Compile(s), "flowing dramatically") {
		t.Fatal("default compiler should limit the clause to the custom-pose branch")
	}
	c := Compiler{FlowingSkirtAllPoses: true}
	if !strings.Contains(c.Compile(s), "flowing dramatically") {
		t.Fatal("FlowingSkirtAllPoses should extend the clause to canonical poses")
	}
}

func TestCompileHairAccessoryNone(t *testing.T) {
	s := domain.DefaultSettings()
	s.HairAccessory = "None"
	if strings.Contains((Compiler{}).Compile(s), "adorned with") {
		t.Fatal("accessory clause should be omitted when accessory is None")
	}
}

func TestCompileEmptyFieldsDoNotPanic(t *testing.T) {
	var s domain.Settings
	out := (Compiler{}).Compile(s)
	if out == "" {
		t.Fatal("compile of zero settings returned empty prompt")
	}
}

func TestCompileDeterministic(t *testing.T) {
	s := domain.DefaultSettings()
	var c Compiler
	if c.Compile(s) != c.Compile(s) {
		t.Fatal("compile is not deterministic")
	}
}

func TestFidelityPrefix(t *testing.T) {
	if got := FidelityPrefix(false, true, true); got != "" {
		t.Fatalf("prefix without reference image = %q, want empty", got)
	}
	if got := FidelityPrefix(true, false, false); got != "" {
		t.Fatalf("prefix without locks = %q, want empty", got)
	}

	face := FidelityPrefix(true, true, false)
	if !strings.Contains(face, "face") || strings.Contains(face, "hair style") {
		t.Fatalf("face-only prefix wrong: %q", face)
	}

	both := FidelityPrefix(true, true, true)
	if !strings.HasSuffix(both, ". ") {
		t.Fatalf("prefix should end with period and trailing space: %q", both)
	}
	if strings.Index(both, "face") > strings.Index(both, "hair style") {
		t.Fatalf("face clause must precede hair clause: %q", both)
	}
}

func TestCompileCarriesSettingsVerbatim(t *testing.T) {
	s := domain.DefaultSettings()
	s.SetDressStyle("Hanfu")
	s.DressColor = "red"
	s.ShotPose = domain.CustomPose
	s.Action = "dancing"

	out := (Compiler{}).Compile(s)

	for _, want := range []string{"red", s.DressDetails, s.Background, s.AspectRatio, "dancing"} {
		if !strings.Contains(out, want) {
			t.Fatalf("compiled prompt missing %q: %s", want, out)
		}
	}
	for _, pose := range domain.ShotPoses {
		if pose.Value == "" {
			continue
		}
		if strings.Contains(out, pose.Value) {
			t.Fatalf("custom-pose prompt contains canonical text %q", pose.Value)
		}
	}
}
