package animator

import (
	"fmt"

	"github.com/Carmen-Shannon/sunlit/engine/mesh"
	"github.com/Carmen-Shannon/sunlit/engine/scene"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// FigureName is the name of the figure's root node.
	FigureName = "sphere_guy"
	// FigurePivot is the undrawn node the skeleton hangs from. Its height bounces with the gait.
	FigurePivot = "point between feet"

	boneRadius = 0.5
)

var boneColour = [4]uint8{120, 100, 0, 255}

// bone is one joint of the figure: a name, its parent and its offset from the parent.
type bone struct {
	name        string
	parent      string
	translation mgl32.Vec3
}

// skeleton lists the figure's joints parents first.
var skeleton = []bone{
	{name: "waist", parent: FigurePivot, translation: mgl32.Vec3{0, 3, 0}},
	{name: "torso", parent: "waist", translation: mgl32.Vec3{0, 2, 0}},
	{name: "neck", parent: "torso", translation: mgl32.Vec3{0, 1, 0}},
	{name: "head", parent: "neck", translation: mgl32.Vec3{0, 1, 0}},
	{name: "stomache", parent: "torso", translation: mgl32.Vec3{0, -1, 0}},
	{name: "left-arm", parent: "torso", translation: mgl32.Vec3{-1, 0, 0}},
	{name: "left-forearm", parent: "left-arm", translation: mgl32.Vec3{-1, 0, 0}},
	{name: "left-hand", parent: "left-forearm", translation: mgl32.Vec3{-1, 0, 0}},
	{name: "right-arm", parent: "torso", translation: mgl32.Vec3{1, 0, 0}},
	{name: "right-forearm", parent: "right-arm", translation: mgl32.Vec3{1, 0, 0}},
	{name: "right-hand", parent: "right-forearm", translation: mgl32.Vec3{1, 0, 0}},
	{name: "left-leg", parent: "waist", translation: mgl32.Vec3{-1, -1, 0}},
	{name: "left-calf", parent: "left-leg", translation: mgl32.Vec3{0, -1, 0}},
	{name: "left-foot", parent: "left-calf", translation: mgl32.Vec3{0, -1, 0}},
	{name: "right-leg", parent: "waist", translation: mgl32.Vec3{1, -1, 0}},
	{name: "right-calf", parent: "right-leg", translation: mgl32.Vec3{0, -1, 0}},
	{name: "right-foot", parent: "right-calf", translation: mgl32.Vec3{0, -1, 0}},
}

// SphereGuy builds the articulated figure: an undrawn pivot carrying a skeleton of spheres, the
// whole turned half a revolution about Y so it faces the camera. Every bone shares one sphere
// payload.
//
// Parameters:
//   - options: mesh options for the shared sphere, typically the texture loader
//
// Returns:
//   - scene.Node: the figure root named FigureName
//   - error: error if the hierarchy could not be assembled
func SphereGuy(options ...mesh.MeshBuilderOption) (scene.Node, error) {
	template := mesh.Sphere("sphere_guy_bone", boneRadius, boneColour, options...)

	root := scene.NewNode(FigureName)
	joints := map[string]scene.Node{FigurePivot: scene.NewNode(FigurePivot)}
	if err := root.AddChild(joints[FigurePivot]); err != nil {
		return nil, err
	}
	for _, b := range skeleton {
		parent, ok := joints[b.parent]
		if !ok {
			return nil, fmt.Errorf("bone %q: parent %q: %w", b.name, b.parent, scene.ErrNodeNotFound)
		}
		n := scene.NewNode(b.name,
			scene.WithDrawInfo(template.DrawInfo()),
			scene.WithRenderingModel(template.RenderingModel()),
			scene.WithTranslation(b.translation),
		)
		if err := parent.AddChild(n); err != nil {
			return nil, fmt.Errorf("bone %q: %w", b.name, err)
		}
		joints[b.name] = n
	}

	root.ApplyTransformation(mgl32.HomogRotate3DY(math32.Pi))
	return root, nil
}

// PoseFigure sets the transform of one figure joint for the given time. Nodes that are not
// joints are left alone, so it can be applied across a whole traversal.
//
// Parameters:
//   - n: the node to pose
//   - speed: gait phase per millisecond
//   - timeMs: the animation clock in milliseconds
func PoseFigure(n scene.Node, speed float32, timeMs float64) {
	c := float32(timeMs * float64(speed))
	t := n.Transform()
	switch n.Name() {
	case FigurePivot:
		t.Translation[1] = math32.Abs(math32.Sin(c))
	case "left-leg":
		t.Rotation[0] = math32.Sin(c)
	case "right-leg":
		t.Rotation[0] = -math32.Sin(c)
	case "left-calf", "left-foot":
		t.Rotation[0] = -math32.Sin(c+0.1) * 0.4
	case "right-calf", "right-foot":
		t.Rotation[0] = math32.Sin(c+0.1) * 0.4
	case "left-arm", "right-arm":
		t.Rotation[2] = math32.Sin(c) * 0.4
	case "left-forearm", "right-forearm":
		t.Rotation[2] = math32.Sin(c+0.1) * 0.4
	case "left-hand", "right-hand":
		t.Rotation[2] = math32.Sin(c-0.1) * 0.4
	case "waist", "torso":
		t.Rotation[1] = math32.Sin(c) * 0.4
	case "neck":
		t.Rotation[1] = math32.Sin(c+0.25) * 0.4
	case "head":
		t.Rotation[1] = math32.Sin(c+0.5) * 0.4
		t.Rotation[0] = math32.Cos(2*c) * 0.4
	}
}
