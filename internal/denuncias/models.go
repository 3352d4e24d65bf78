// Package denuncias fetches the complaint reference lists the tracking page
// joins: base complaints plus five lists keyed by denuncia_id.
package denuncias

import (
	"encoding/json"
	"math"
	"strconv"
)

// Dataset origins, as shown in the tracking page notice.
const (
	SourceAPI  = "api"
	SourceMock = "mock"
)

// ID is a record key. The upstream sometimes writes integers as 10001.0, so
// any JSON number holding an exact integer decodes. Fractions, strings and
// null decode to NoID, which never joins, instead of failing the dataset.
type ID int64

// NoID marks a key that could not be read as an integer.
const NoID ID = math.MinInt64

func (id *ID) UnmarshalJSON(data []byte) error {
	*id = NoID
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		// Syntax is checked by the outer decoder; this is a number out of
		// float64 range.
		return nil
	}
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return nil
	}
	*id = ID(f)
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id == NoID {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(id), 10), nil
}

// Text fields are pointers: a missing or null value takes a placeholder,
// while an empty string is shown as is.

// BaseRecord is one filed complaint (h25_denuncias_bas).
type BaseRecord struct {
	FolioID            ID      `json:"folio_id"`
	FechaEmision       string  `json:"fecha_emision"`
	RazonJustificacion string  `json:"razon_justificacion"`
	EstadoDenuncia     *string `json:"estado_denuncia,omitempty"`
}

// OfficialRecord describes the public official a complaint is about (h25_sp).
type OfficialRecord struct {
	IDSP                ID      `json:"id_sp"`
	DenunciaID          ID      `json:"denuncia_id"`
	OrganismoAlcaldia   *string `json:"organismo_alcaldia,omitempty"`
	CargoGradoServidor  *string `json:"cargo_grado_servidor,omitempty"`
	TipoDeFalta         *string `json:"tipo_de_falta,omitempty"`
	UnidadInvestigadora *string `json:"unidad_investigadora,omitempty"`
}

// ComplainantRecord holds the complainant type (h25_denunc_anon).
type ComplainantRecord struct {
	IDDenuncCal        ID      `json:"id_denunc_cal"`
	DenunciaID         ID      `json:"denuncia_id"`
	CalidadDenunciante *string `json:"calidad_denunciante,omitempty"`
}

// FaultRecord classifies the alleged fault (h25_falta_clasif).
type FaultRecord struct {
	IDFalta               ID      `json:"id_falta"`
	DenunciaID            ID      `json:"denuncia_id"`
	TipoFalta             *string `json:"tipo_falta,omitempty"`
	AreaProyectoVinculado *string `json:"area_proyecto_vinculado,omitempty"`
}

// ProcessRecord tracks the investigation (h25_proc_inv).
type ProcessRecord struct {
	IDProceso         ID       `json:"id_proceso"`
	DenunciaID        ID       `json:"denuncia_id"`
	PlazosLegalesDias *float64 `json:"plazos_legales_dias,omitempty"`
	MedidasCautelares *string  `json:"medidas_cautelares,omitempty"`
}

// ResolutionRecord is the final ruling and sanction (h25_res_sanc).
type ResolutionRecord struct {
	IDResolucion         ID       `json:"id_resolucion"`
	DenunciaID           ID       `json:"denuncia_id"`
	FechaResolucionFinal *string  `json:"fecha_resolucion_final,omitempty"`
	ResultadoFallo       *string  `json:"resultado_fallo,omitempty"`
	TipoSancionImpuesta  *string  `json:"tipo_sancion_impuesta,omitempty"`
	MontoSuspension      *float64 `json:"monto_suspension,omitempty"`
}

// Dataset is the /api/denuncias payload. Every list is optional.
//
// A Dataset returned by a Source is shared between requests and must be
// treated as read-only.
type Dataset struct {
	Source       string              `json:"source,omitempty"`
	Base         []BaseRecord        `json:"h25_denuncias_bas,omitempty"`
	Officials    []OfficialRecord    `json:"h25_sp,omitempty"`
	Complainants []ComplainantRecord `json:"h25_denunc_anon,omitempty"`
	Faults       []FaultRecord       `json:"h25_falta_clasif,omitempty"`
	Processes    []ProcessRecord     `json:"h25_proc_inv,omitempty"`
	Resolutions  []ResolutionRecord  `json:"h25_res_sanc,omitempty"`
}

// UnmarshalJSON accepts the legacy h25_datos_sp key for officials. h25_sp
// wins whenever it is present, even as an empty list.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	type plain Dataset
	var wire struct {
		plain
		LegacyOfficials []OfficialRecord `json:"h25_datos_sp"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*d = Dataset(wire.plain)
	if d.Officials == nil {
		d.Officials = wire.LegacyOfficials
	}
	return nil
}

// NormalizeSource maps a payload marker onto SourceAPI or SourceMock. An empty
// marker takes def; anything other than "api" is demonstration data.
func NormalizeSource(marker, def string) string {
	switch marker {
	case "":
		return def
	case SourceAPI:
		return SourceAPI
	default:
		return SourceMock
	}
}

// WithSource returns a shallow copy of d carrying a different source marker.
func (d *Dataset) WithSource(source string) *Dataset {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Source = source
	return &cp
}
