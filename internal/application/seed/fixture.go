package seed

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Codificaciones aceptadas para fixtures exportados desde hojas de cálculo.
const (
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "iso-8859-1"
	EncodingWindows1252 = "windows-1252"
)

// DecodeDataset lee un Dataset JSON en la codificación indicada ("" = utf-8).
// Campos desconocidos son error, para detectar fixtures con nombres mal escritos.
func DecodeDataset(r io.Reader, encoding string) (Dataset, error) {
	var ds Dataset
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
	case EncodingLatin1, "latin1", "latin-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case EncodingWindows1252, "cp1252":
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	default:
		return ds, fmt.Errorf("seed: codificación no soportada %q", encoding)
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ds); err != nil {
		return ds, fmt.Errorf("seed: decodificar fixture: %w", err)
	}
	return ds, nil
}
