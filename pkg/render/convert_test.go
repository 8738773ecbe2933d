package render

import (
	"testing"

	errs "github.com/matzehuels/hierview/pkg/errors"
)

func TestConvertMissingTool(t *testing.T) {
	old := converter
	converter = "hierview-no-such-converter"
	defer func() { converter = old }()

	if CanConvert() {
		t.Fatal("CanConvert() = true for a missing tool")
	}
	if _, err := ToPDF([]byte("<svg/>")); !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want %v", err, errs.ErrCodeUnsupported)
	}
	if _, err := ToPNG([]byte("<svg/>"), 2); !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("ToPNG() error = %v, want %v", err, errs.ErrCodeUnsupported)
	}
}
