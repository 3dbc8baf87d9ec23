package dockerfile

import "strings"

// Flatten renders a Recipe's current tree back into canonical recipe text:
// each stage's FROM line, then its layers in order, then a blank line;
// stages are separated by two blank lines. Global ARGs preceding the first
// FROM are emitted first, as re-rendered from their parsed instructions.
func Flatten(r *Recipe) []byte {
	var b strings.Builder

	for _, arg := range r.globalArgs {
		b.WriteString(arg)
		b.WriteByte('\n')
	}
	if len(r.globalArgs) > 0 {
		b.WriteByte('\n')
	}

	for i, stage := range r.stages {
		b.WriteString(fromLine(stage))
		b.WriteByte('\n')

		for _, layer := range stage.layers {
			b.WriteString(layer.Text())
			b.WriteByte('\n')
		}

		if i < len(r.stages)-1 {
			b.WriteString("\n\n")
		}
	}

	return []byte(strings.TrimRight(b.String(), "\n") + "\n")
}

func fromLine(s Stage) string {
	line := "FROM " + s.baseImage.FullName()
	if s.name != "" {
		line += " AS " + s.name
	}
	return line
}
