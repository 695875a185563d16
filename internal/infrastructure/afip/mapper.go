package afip

import "time"

// ResultadoCAE es el resultado de dominio de una solicitud de CAE. Un rechazo
// de AFIP es un resultado normal con Aprobado=false y los motivos en Errores
// y Observaciones, nunca un error de Go.
type ResultadoCAE struct {
	Aprobado       bool
	CAE            string
	CAEVencimiento *time.Time // nil si fue rechazado o AFIP no informó vencimiento
	NroComprobante int64
	Errores        []string
	Observaciones  []string
}

// MapearResultadoCAE traduce la respuesta parseada al resultado de dominio.
// Aprobado es verdadero si y solo si hay CAE no vacío y la lista de errores
// está vacía; las observaciones son advertencias y no voltean la aprobación.
// Nunca falla: toda respuesta estructuralmente válida produce un resultado.
func MapearResultadoCAE(resp *FECAERespuesta) ResultadoCAE {
	res := ResultadoCAE{
		Errores: append([]string(nil), resp.Errores...),
	}

	if len(resp.FeDetResp) > 0 {
		det := resp.FeDetResp[0]
		res.CAE = det.CAE
		res.NroComprobante = det.CbteDesde
		res.Observaciones = append([]string(nil), det.Observaciones...)
		if t, err := time.Parse("20060102", det.CAEFchVto); err == nil {
			res.CAEVencimiento = &t
		}
	}

	res.Aprobado = res.CAE != "" && len(res.Errores) == 0
	return res
}
