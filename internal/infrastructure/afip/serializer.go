package afip

import (
	"encoding/xml"
	"fmt"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// SerializarSolicitudCAE serializa el envelope de FECAESolicitar al texto que
// viaja por el wire. La salida es determinística: el mismo envelope produce
// siempre los mismos bytes.
func SerializarSolicitudCAE(env *SolicitudEnvelope) ([]byte, error) {
	return serializar(env)
}

// SerializarConsultaUltimo serializa el envelope de FECompUltimoAutorizado.
func SerializarConsultaUltimo(env *ConsultaUltimoEnvelope) ([]byte, error) {
	return serializar(env)
}

func serializar(env any) ([]byte, error) {
	body, err := xml.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializando envelope: %w", err)
	}
	out := make([]byte, 0, len(xmlHeader)+len(body)+1)
	out = append(out, xmlHeader...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}
