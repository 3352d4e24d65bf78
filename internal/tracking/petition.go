package tracking

import (
	"math"
	"strconv"
	"time"

	"dataforall/internal/denuncias"
)

// Placeholders shown when a joined list has no value for the complaint.
const (
	NotAvailable       = "No disponible"
	NotSpecified       = "No especificado"
	NotSpecifiedFem    = "No especificada"
	NoAgencySpecified  = "Dependencia no especificada"
	NoMeasuresRecorded = "No registradas"
	InProgress         = "En trámite"
	ProgressUnknown    = "ND"
)

// Petition is the assembled display view of one complaint. It is rebuilt on
// every search and never stored.
type Petition struct {
	Folio           int64           `json:"folio"`
	DatosGenerales  GeneralData     `json:"datosGenerales"`
	ServidorPublico PublicOfficial  `json:"servidorPublico"`
	Denunciante     Complainant     `json:"denunciante"`
	Falta           Fault           `json:"falta"`
	Investigacion   Investigation   `json:"investigacion"`
	Timeline        []TimelineEvent `json:"timeline"`
}

type GeneralData struct {
	FechaEmision string `json:"fechaEmision"`
	Motivo       string `json:"motivo"`
	EstadoActual string `json:"estadoActual"`
}

type PublicOfficial struct {
	AlcaldiaOrganismo   string `json:"alcaldiaOrganismo"`
	Cargo               string `json:"cargo"`
	TipoFalta           string `json:"tipoFalta"`
	UnidadInvestigadora string `json:"unidadInvestigadora"`
	IDDenuncia          string `json:"idDenuncia"`
}

type Complainant struct {
	Calidad string `json:"calidad"`
}

type Fault struct {
	Tipo string `json:"tipo"`
	Area string `json:"area"`
}

type Investigation struct {
	PlazosLegales       string `json:"plazosLegales"`
	MedidasCautelares   string `json:"medidasCautelares"`
	RelacionConDenuncia string `json:"relacionConDenuncia"`
	EstadoInvestigacion string `json:"estadoInvestigacion"`
	UltimaActualizacion string `json:"ultimaActualizacion"`
	AvancePorcentaje    string `json:"avancePorcentaje"`
}

type TimelineEvent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// joined holds the first record of each related list for one complaint.
type joined struct {
	base        denuncias.BaseRecord
	official    *denuncias.OfficialRecord
	complainant *denuncias.ComplainantRecord
	fault       *denuncias.FaultRecord
	process     *denuncias.ProcessRecord
	resolution  *denuncias.ResolutionRecord
}

// BuildPetition finds folio among the base records and left-joins the five
// related lists on denuncia_id. now stamps the "Estado actual" timeline entry.
func BuildPetition(ds *denuncias.Dataset, folio int64, now time.Time, loc *time.Location) (*Petition, error) {
	if loc == nil {
		loc = time.UTC
	}
	if ds == nil {
		return nil, ErrFolioNotFound
	}
	j, ok := join(ds, folio)
	if !ok {
		return nil, ErrFolioNotFound
	}
	return assemble(j, now, loc), nil
}

func join(ds *denuncias.Dataset, folio int64) (joined, bool) {
	var j joined
	key := denuncias.ID(folio)
	if key == denuncias.NoID {
		return j, false
	}
	base, ok := first(ds.Base, func(b denuncias.BaseRecord) bool { return b.FolioID == key })
	if !ok {
		return j, false
	}
	j.base = *base
	id := base.FolioID
	j.official, _ = first(ds.Officials, func(r denuncias.OfficialRecord) bool { return r.DenunciaID == id })
	j.complainant, _ = first(ds.Complainants, func(r denuncias.ComplainantRecord) bool { return r.DenunciaID == id })
	j.fault, _ = first(ds.Faults, func(r denuncias.FaultRecord) bool { return r.DenunciaID == id })
	j.process, _ = first(ds.Processes, func(r denuncias.ProcessRecord) bool { return r.DenunciaID == id })
	j.resolution, _ = first(ds.Resolutions, func(r denuncias.ResolutionRecord) bool { return r.DenunciaID == id })
	return j, true
}

func first[T any](list []T, match func(T) bool) (*T, bool) {
	for i := range list {
		if match(list[i]) {
			return &list[i], true
		}
	}
	return nil, false
}

// assemble fills each field from the first present value. A value that is
// present but empty is kept; only missing or null values fall through to the
// next source or the placeholder.
func assemble(j joined, now time.Time, loc *time.Location) *Petition {
	b := j.base
	folio := strconv.FormatInt(int64(b.FolioID), 10)
	state := deref(b.EstadoDenuncia)

	// Missing lists behave like records with every field unset.
	var (
		sp    denuncias.OfficialRecord
		fault denuncias.FaultRecord
		who   denuncias.ComplainantRecord
		proc  denuncias.ProcessRecord
	)
	if j.official != nil {
		sp = *j.official
	}
	if j.fault != nil {
		fault = *j.fault
	}
	if j.complainant != nil {
		who = *j.complainant
	}
	if j.process != nil {
		proc = *j.process
	}

	p := &Petition{
		Folio: int64(b.FolioID),
		DatosGenerales: GeneralData{
			FechaEmision: formatDate(b.FechaEmision, loc),
			Motivo:       b.RazonJustificacion,
			EstadoActual: state,
		},
		ServidorPublico: PublicOfficial{
			AlcaldiaOrganismo:   present(NotAvailable, sp.OrganismoAlcaldia),
			Cargo:               present(NotAvailable, sp.CargoGradoServidor),
			TipoFalta:           present(NotAvailable, fault.TipoFalta, sp.TipoDeFalta),
			UnidadInvestigadora: present(NotAvailable, sp.UnidadInvestigadora),
			IDDenuncia:          folio,
		},
		Denunciante: Complainant{Calidad: present(NotSpecified, who.CalidadDenunciante)},
		Falta: Fault{
			Tipo: present(NotSpecified, fault.TipoFalta, sp.TipoDeFalta),
			Area: present(NoAgencySpecified, fault.AreaProyectoVinculado, sp.OrganismoAlcaldia),
		},
		Investigacion: Investigation{
			PlazosLegales:       NotSpecified,
			MedidasCautelares:   present(NoMeasuresRecorded, proc.MedidasCautelares),
			RelacionConDenuncia: "Asociada al folio " + folio,
			EstadoInvestigacion: present(InProgress, b.EstadoDenuncia),
			UltimaActualizacion: formatDate(b.FechaEmision, loc),
			AvancePorcentaje:    ProgressUnknown,
		},
	}

	// Zero days is no deadline at all.
	if d := proc.PlazosLegalesDias; d != nil && *d != 0 && !math.IsNaN(*d) {
		p.Investigacion.PlazosLegales = strconv.FormatFloat(*d, 'f', -1, 64) + " días"
	}

	p.Timeline = append(p.Timeline, TimelineEvent{
		Title:       "Denuncia registrada",
		Description: b.RazonJustificacion,
		Date:        formatDateTime(b.FechaEmision, loc),
	})

	if r := j.resolution; r != nil {
		p.Investigacion.EstadoInvestigacion = present(InProgress, r.ResultadoFallo, b.EstadoDenuncia)
		date := deref(r.FechaResolucionFinal)
		if date != "" {
			p.Investigacion.UltimaActualizacion = formatDate(date, loc)
		}

		event := TimelineEvent{
			Title: "Resolución",
			Description: "Resultado: " + present(NotSpecified, r.ResultadoFallo) +
				". Sanción: " + present(NotSpecifiedFem, r.TipoSancionImpuesta) + ".",
		}
		if date != "" {
			event.Date = formatDateTime(date, loc)
		}
		p.Timeline = append(p.Timeline, event)
	}

	p.Timeline = append(p.Timeline, TimelineEvent{
		Title:       "Estado actual",
		Description: "La denuncia se encuentra en estado: " + state + ".",
		Date:        now.In(loc).Format(shortDateTime),
	})
	return p
}

// present returns the first non-nil value, or def when all are unset.
func present(def string, values ...*string) string {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return def
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
