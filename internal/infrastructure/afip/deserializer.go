package afip

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ── Deserializer ─────────────────────────────────────────────────────────────
//
// El parser matchea por nombre local e ignora elementos desconocidos, así los
// campos que AFIP agregue a futuro no rompen el parseo. Las secuencias
// (errores, observaciones, eventos, detalles) conservan el orden del
// documento.

// ParsearRespuestaCAE parsea el texto de respuesta de FECAESolicitar.
// Devuelve ErrSoapFault si el body trae un Fault de protocolo y
// ErrRespuestaMalformada si el texto no tiene la forma del schema esperado.
// Un rechazo de negocio NO es un error de parseo: la respuesta se decodifica
// completa y el mapper la traduce a resultado con éxito=false.
func ParsearRespuestaCAE(data []byte) (*FECAERespuesta, error) {
	body, err := parsearBody(data)
	if err != nil {
		return nil, err
	}
	if body.FECAESolicitarResponse == nil {
		return nil, fmt.Errorf("%w: falta FECAESolicitarResponse en el body", ErrRespuestaMalformada)
	}
	return &body.FECAESolicitarResponse.Result, nil
}

// ParsearUltimoAutorizado parsea el texto de respuesta de
// FECompUltimoAutorizado.
func ParsearUltimoAutorizado(data []byte) (*UltimoAutorizado, error) {
	body, err := parsearBody(data)
	if err != nil {
		return nil, err
	}
	if body.FECompUltimoAutorizadoResponse == nil {
		return nil, fmt.Errorf("%w: falta FECompUltimoAutorizadoResponse en el body", ErrRespuestaMalformada)
	}
	return &body.FECompUltimoAutorizadoResponse.Result, nil
}

func parsearBody(data []byte) (*RespuestaBody, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader

	var env RespuestaEnvelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRespuestaMalformada, err)
	}
	if env.Body == nil {
		return nil, fmt.Errorf("%w: el envelope no tiene Body", ErrRespuestaMalformada)
	}
	if env.Body.Fault != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrSoapFault, env.Body.Fault.Code, env.Body.Fault.Message)
	}
	return env.Body, nil
}

// charsetReader tolera las codificaciones latinas que AFIP usó históricamente
// además de UTF-8.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "utf-8", "us-ascii", "":
		return input, nil
	case "iso-8859-1", "latin1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("charset no soportado: %q", charset)
	}
}
