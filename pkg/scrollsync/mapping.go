package scrollsync

// Pair holds the measured heights of one section in both panes.
type Pair struct {
	Key           string
	EditorHeight  float64
	PreviewHeight float64
}

// MapOffset converts an editor scroll offset into a preview scroll offset.
//
// With resolvable pairs the mapping is piecewise linear: the section whose editor
// range contains editorTop is found (the last one wins past the end), and the
// fractional progress through it is applied to the same section in the preview.
// Without pairs it falls back to the global ratio editorTop/editorMax. The ends
// always line up: 0 maps to 0 and editorMax maps to previewMax.
func MapOffset(editorTop, editorMax, previewMax float64, pairs []Pair) (previewTop float64) {
	if previewMax <= 0 || editorMax <= 0 || editorTop <= 0 {
		return previewTop
	}
	if editorTop >= editorMax {
		previewTop = previewMax
		return previewTop
	}

	total := 0.0
	for _, p := range pairs {
		total += max(p.EditorHeight, 0)
	}
	if len(pairs) == 0 || total <= 0 {
		previewTop = editorTop / editorMax * previewMax
		return previewTop
	}

	editorAcc, previewAcc := 0.0, 0.0
	for i, p := range pairs {
		editorHeight := max(p.EditorHeight, 0)
		previewHeight := max(p.PreviewHeight, 0)
		last := i == len(pairs)-1

		if editorTop < editorAcc+editorHeight || last {
			progress := 0.0
			if editorHeight > 0 {
				progress = clamp((editorTop-editorAcc)/editorHeight, 0, 1)
			}
			previewTop = previewAcc + progress*previewHeight
			break
		}

		editorAcc += editorHeight
		previewAcc += previewHeight
	}

	previewTop = clamp(previewTop, 0, previewMax)
	return previewTop
}

func clamp(v, lo, hi float64) (out float64) {
	out = min(max(v, lo), hi)
	return out
}
