package dockerfile

// Stage is an instruction group opened by a FROM instruction. Like Layer,
// it is a read-only view; Recipe owns the backing slice.
type Stage struct {
	recipe *Recipe

	index     int
	name      string
	baseImage Image
	line      int
	layers    []Layer
}

// Index returns the stage's 0-based position in the recipe.
func (s Stage) Index() int { return s.index }

// Name returns the stage's "AS <name>" alias, or "" when absent.
func (s Stage) Name() string { return s.name }

// BaseImage returns the image named in the stage's FROM instruction.
func (s Stage) BaseImage() Image { return s.baseImage }

// Line returns the FROM instruction's source line.
func (s Stage) Line() int { return s.line }

// Layers returns the stage's layers in order.
func (s Stage) Layers() []Layer { return s.layers }

// IsFinal reports whether this is the recipe's last (deliverable) stage.
func (s Stage) IsFinal() bool { return s.index == len(s.recipe.stages)-1 }
