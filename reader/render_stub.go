//go:build !ocr

package reader

func newRenderer(string) (renderer, error) {
	return nil, ErrRenderNotEnabled
}
