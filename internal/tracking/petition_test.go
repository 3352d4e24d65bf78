package tracking

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataforall/internal/denuncias"
)

func mexicoCity(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)
	return loc
}

func demoDataset(t *testing.T) *denuncias.Dataset {
	t.Helper()
	ds, err := denuncias.LoadEmbedded()
	require.NoError(t, err)
	return ds
}

func TestParseFolio(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		err  error
	}{
		{in: "10001", want: 10001},
		{in: "  10001\t", want: 10001},
		{in: "+42", want: 42},
		{in: "1e4", want: 10000},
		{in: "10001.0", want: 10001},
		{in: "", err: ErrEmptyFolio},
		{in: "   ", err: ErrEmptyFolio},
		{in: "abc", err: ErrFolioNotNumeric},
		{in: "10001a", err: ErrFolioNotNumeric},
		{in: "10001.", want: 10001},
		{in: "0x2711", want: 10001},
		{in: "0X2711", want: 10001},
		{in: "0o17", want: 15},
		{in: "0b101", want: 5},
		{in: "-0", want: 0},
		{in: "NaN", err: ErrFolioNotNumeric},
		{in: "1_000", err: ErrFolioNotNumeric},
		{in: "10_001", err: ErrFolioNotNumeric},
		{in: "inf", err: ErrFolioNotNumeric},
		{in: "+Inf", err: ErrFolioNotNumeric},
		{in: "infinity", err: ErrFolioNotNumeric},
		{in: "-0x10", err: ErrFolioNotNumeric},
		{in: "0x", err: ErrFolioNotNumeric},
		{in: "0b102", err: ErrFolioNotNumeric},
		{in: "0x1p4", err: ErrFolioNotNumeric},
		{in: "10001.5", err: ErrFolioNotFound},
		{in: ".5", err: ErrFolioNotFound},
		{in: "1e300", err: ErrFolioNotFound},
		{in: "1e400", err: ErrFolioNotFound},
		{in: "Infinity", err: ErrFolioNotFound},
		{in: "-Infinity", err: ErrFolioNotFound},
		{in: "0xFFFFFFFFFFFFFFFFFF", err: ErrFolioNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFolio(tc.in)
			if tc.err != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNonNumericInputAlwaysYieldsNumericMessage(t *testing.T) {
	for _, in := range []string{"folio", "12-34", "١٢٣", "10 001", "--1", "1,000", "null", "undefined", "1_000", "inf", "0x"} {
		_, err := ParseFolio(in)
		var te *Error
		require.True(t, errors.As(err, &te), "input %q", in)
		assert.Equal(t, "El folio debe ser numérico, por ejemplo: 10001.", te.Message, "input %q", in)
	}
}

func TestDateFormatting(t *testing.T) {
	loc := mexicoCity(t)

	assert.Equal(t, "12/3/2024", formatDate("2024-03-12", loc))
	assert.Equal(t, "12/3/2024, 00:00:00", formatDateTime("2024-03-12", loc))
	assert.Equal(t, "30/9/2024, 16:45:00", formatDateTime("2024-09-30T16:45:00-06:00", loc))
	assert.Equal(t, "30/9/2024, 16:45:00", formatDateTime("2024-09-30T22:45:00Z", loc))
	assert.Equal(t, "1/10/2024", formatDate("2024-10-01 08:00:00", loc))
	assert.Equal(t, "pendiente", formatDate("pendiente", loc))
	assert.Equal(t, "", formatDateTime("", loc))
}

func TestBuildPetition(t *testing.T) {
	loc := mexicoCity(t)
	ds := demoDataset(t)
	now := time.Date(2025, 6, 1, 18, 30, 5, 0, time.UTC)

	t.Run("fully joined complaint with resolution", func(t *testing.T) {
		p, err := BuildPetition(ds, 10002, now, loc)
		require.NoError(t, err)

		assert.Equal(t, int64(10002), p.Folio)
		assert.Equal(t, GeneralData{
			FechaEmision: "2/5/2024",
			Motivo:       "Desvío de recursos del programa de becas escolares",
			EstadoActual: "Resuelta",
		}, p.DatosGenerales)
		assert.Equal(t, PublicOfficial{
			AlcaldiaOrganismo:   "Secretaría de Educación, Ciencia, Tecnología e Innovación",
			Cargo:               "Director de Programas Sociales",
			TipoFalta:           "Grave",
			UnidadInvestigadora: "Secretaría de la Contraloría General",
			IDDenuncia:          "10002",
		}, p.ServidorPublico)
		assert.Equal(t, "Anónimo", p.Denunciante.Calidad)
		assert.Equal(t, Fault{Tipo: "Grave", Area: "Programa Bienestar para Niñas y Niños"}, p.Falta)
		assert.Equal(t, Investigation{
			PlazosLegales:       "120 días",
			MedidasCautelares:   NoMeasuresRecorded,
			RelacionConDenuncia: "Asociada al folio 10002",
			EstadoInvestigacion: "Responsable",
			UltimaActualizacion: "15/11/2024",
			AvancePorcentaje:    "ND",
		}, p.Investigacion)

		require.Len(t, p.Timeline, 3)
		assert.Equal(t, TimelineEvent{
			Title:       "Denuncia registrada",
			Description: "Desvío de recursos del programa de becas escolares",
			Date:        "2/5/2024, 00:00:00",
		}, p.Timeline[0])
		assert.Equal(t, TimelineEvent{
			Title:       "Resolución",
			Description: "Resultado: Responsable. Sanción: Inhabilitación temporal.",
			Date:        "15/11/2024, 00:00:00",
		}, p.Timeline[1])
		assert.Equal(t, TimelineEvent{
			Title:       "Estado actual",
			Description: "La denuncia se encuentra en estado: Resuelta.",
			Date:        "1/6/2025, 12:30:05",
		}, p.Timeline[2])
	})

	t.Run("no related records falls back to placeholders", func(t *testing.T) {
		p, err := BuildPetition(ds, 10006, now, loc)
		require.NoError(t, err)

		assert.Equal(t, NotAvailable, p.ServidorPublico.AlcaldiaOrganismo)
		assert.Equal(t, NotAvailable, p.ServidorPublico.Cargo)
		assert.Equal(t, NotAvailable, p.ServidorPublico.TipoFalta)
		assert.Equal(t, NotAvailable, p.ServidorPublico.UnidadInvestigadora)
		assert.Equal(t, "10006", p.ServidorPublico.IDDenuncia)
		assert.Equal(t, NotSpecified, p.Denunciante.Calidad)
		assert.Equal(t, NotSpecified, p.Falta.Tipo)
		assert.Equal(t, NoAgencySpecified, p.Falta.Area)
		assert.Equal(t, NotSpecified, p.Investigacion.PlazosLegales)
		assert.Equal(t, NoMeasuresRecorded, p.Investigacion.MedidasCautelares)
		assert.Equal(t, "Recibida", p.Investigacion.EstadoInvestigacion)
		assert.Equal(t, "21/2/2025", p.Investigacion.UltimaActualizacion)

		require.Len(t, p.Timeline, 2)
		assert.Equal(t, "Denuncia registrada", p.Timeline[0].Title)
		assert.Equal(t, "Estado actual", p.Timeline[1].Title)
	})

	t.Run("fault without area and no official", func(t *testing.T) {
		p, err := BuildPetition(ds, 10004, now, loc)
		require.NoError(t, err)

		assert.Equal(t, "No grave", p.ServidorPublico.TipoFalta)
		assert.Equal(t, "No grave", p.Falta.Tipo)
		assert.Equal(t, NoAgencySpecified, p.Falta.Area)
		assert.Equal(t, "30/9/2024", p.DatosGenerales.FechaEmision)
		assert.Equal(t, "30/9/2024, 16:45:00", p.Timeline[0].Date)
	})

	t.Run("official supplies fault type and area when classification is missing", func(t *testing.T) {
		p, err := BuildPetition(ds, 10003, now, loc)
		require.NoError(t, err)

		assert.Equal(t, "Abuso de funciones", p.ServidorPublico.TipoFalta)
		assert.Equal(t, "Abuso de funciones", p.Falta.Tipo)
		assert.Equal(t, "Secretaría de Seguridad Ciudadana", p.Falta.Area)
	})

	t.Run("resolution without date or sanction", func(t *testing.T) {
		p, err := BuildPetition(ds, 10005, now, loc)
		require.NoError(t, err)

		assert.Equal(t, NotSpecified, p.Investigacion.PlazosLegales, "zero days is not a deadline")
		assert.Equal(t, NoMeasuresRecorded, p.Investigacion.MedidasCautelares)
		assert.Equal(t, "Sin responsabilidad", p.Investigacion.EstadoInvestigacion)
		assert.Equal(t, "8/1/2025", p.Investigacion.UltimaActualizacion)

		require.Len(t, p.Timeline, 3)
		assert.Equal(t, "Resultado: Sin responsabilidad. Sanción: No especificada.", p.Timeline[1].Description)
		assert.Empty(t, p.Timeline[1].Date)
	})

	t.Run("first matching record of each list wins", func(t *testing.T) {
		ds := &denuncias.Dataset{
			Base: []denuncias.BaseRecord{
				{FolioID: 7, EstadoDenuncia: text("Primero")},
				{FolioID: 7, EstadoDenuncia: text("Segundo")},
			},
			Complainants: []denuncias.ComplainantRecord{
				{DenunciaID: 8, CalidadDenunciante: text("Otro")},
				{DenunciaID: 7, CalidadDenunciante: text("Ciudadano")},
				{DenunciaID: 7, CalidadDenunciante: text("Anónimo")},
			},
		}
		p, err := BuildPetition(ds, 7, now, loc)
		require.NoError(t, err)
		assert.Equal(t, "Primero", p.DatosGenerales.EstadoActual)
		assert.Equal(t, "Ciudadano", p.Denunciante.Calidad)
	})

	t.Run("resolution without result falls back to base state", func(t *testing.T) {
		ds := &denuncias.Dataset{
			Base:        []denuncias.BaseRecord{{FolioID: 9, FechaEmision: "2024-01-02", EstadoDenuncia: text("Turnada")}},
			Resolutions: []denuncias.ResolutionRecord{{DenunciaID: 9}},
		}
		p, err := BuildPetition(ds, 9, now, loc)
		require.NoError(t, err)
		assert.Equal(t, "Turnada", p.Investigacion.EstadoInvestigacion)
		assert.Equal(t, "Resultado: No especificado. Sanción: No especificada.", p.Timeline[1].Description)
	})
}

func TestBuildPetitionKeepsEmptyValues(t *testing.T) {
	loc := mexicoCity(t)
	now := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	t.Run("empty strings are shown instead of falling through", func(t *testing.T) {
		ds := &denuncias.Dataset{
			Base: []denuncias.BaseRecord{{FolioID: 11, FechaEmision: "2024-01-02", EstadoDenuncia: text("")}},
			Officials: []denuncias.OfficialRecord{{
				DenunciaID:        11,
				OrganismoAlcaldia: text(""),
				TipoDeFalta:       text("Grave"),
			}},
			Faults: []denuncias.FaultRecord{{DenunciaID: 11, TipoFalta: text("")}},
			Resolutions: []denuncias.ResolutionRecord{{
				DenunciaID:     11,
				ResultadoFallo: text(""),
			}},
		}
		p, err := BuildPetition(ds, 11, now, loc)
		require.NoError(t, err)

		assert.Equal(t, "", p.ServidorPublico.AlcaldiaOrganismo)
		assert.Equal(t, "", p.ServidorPublico.TipoFalta)
		assert.Equal(t, "", p.Falta.Tipo)
		assert.Equal(t, "", p.Falta.Area, "area falls through to the empty agency")
		assert.Equal(t, "", p.Investigacion.EstadoInvestigacion)
		assert.Equal(t, NotAvailable, p.ServidorPublico.Cargo)
		assert.Equal(t, "Resultado: . Sanción: No especificada.", p.Timeline[1].Description)
	})

	t.Run("missing values fall through to the next source", func(t *testing.T) {
		ds := &denuncias.Dataset{
			Base:        []denuncias.BaseRecord{{FolioID: 12, FechaEmision: "2024-01-02", EstadoDenuncia: text("")}},
			Officials:   []denuncias.OfficialRecord{{DenunciaID: 12, TipoDeFalta: text("Grave")}},
			Faults:      []denuncias.FaultRecord{{DenunciaID: 12}},
			Resolutions: []denuncias.ResolutionRecord{{DenunciaID: 12}},
		}
		p, err := BuildPetition(ds, 12, now, loc)
		require.NoError(t, err)

		assert.Equal(t, "Grave", p.ServidorPublico.TipoFalta)
		assert.Equal(t, NoAgencySpecified, p.Falta.Area)
		assert.Equal(t, "", p.Investigacion.EstadoInvestigacion, "empty base state still wins over the placeholder")
	})

	t.Run("missing base state uses the in progress placeholder", func(t *testing.T) {
		ds := &denuncias.Dataset{Base: []denuncias.BaseRecord{{FolioID: 13, FechaEmision: "2024-01-02"}}}
		p, err := BuildPetition(ds, 13, now, loc)
		require.NoError(t, err)
		assert.Equal(t, InProgress, p.Investigacion.EstadoInvestigacion)
		assert.Equal(t, "La denuncia se encuentra en estado: .", p.Timeline[1].Description)
	})

	t.Run("any non zero deadline is shown", func(t *testing.T) {
		for days, want := range map[float64]string{120: "120 días", 45.5: "45.5 días", -3: "-3 días", 0: NotSpecified} {
			ds := &denuncias.Dataset{
				Base:      []denuncias.BaseRecord{{FolioID: 14, FechaEmision: "2024-01-02"}},
				Processes: []denuncias.ProcessRecord{{DenunciaID: 14, PlazosLegalesDias: &days}},
			}
			p, err := BuildPetition(ds, 14, now, loc)
			require.NoError(t, err)
			assert.Equal(t, want, p.Investigacion.PlazosLegales, "days %v", days)
		}
	})
}

func TestBuildPetitionIgnoresUnreadableKeys(t *testing.T) {
	var ds denuncias.Dataset
	body := `{
		"h25_denuncias_bas":[{"folio_id":"15"},{"folio_id":15.5},{"folio_id":15.0,"fecha_emision":"2024-01-02"}],
		"h25_sp":[{"id_sp":1,"denuncia_id":15.0,"cargo_grado_servidor":"Director"}],
		"h25_proc_inv":[{"id_proceso":1,"denuncia_id":15,"plazos_legales_dias":120.0}]
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &ds))

	p, err := BuildPetition(&ds, 15, time.Now(), mexicoCity(t))
	require.NoError(t, err)
	assert.Equal(t, "Director", p.ServidorPublico.Cargo)
	assert.Equal(t, "120 días", p.Investigacion.PlazosLegales)

	_, err = BuildPetition(&ds, int64(denuncias.NoID), time.Now(), mexicoCity(t))
	assert.ErrorIs(t, err, ErrFolioNotFound)
}

func text(s string) *string { return &s }

func TestUnknownFolioAlwaysYieldsNotFound(t *testing.T) {
	loc := mexicoCity(t)
	ds := demoDataset(t)
	for _, folio := range []int64{0, -1, 1, 9999, 10007, 99999999} {
		_, err := BuildPetition(ds, folio, time.Now(), loc)
		assert.ErrorIs(t, err, ErrFolioNotFound, "folio %d", folio)
		assert.Equal(t, ErrFolioNotFound.Message, MessageFor(err))
	}

	_, err := BuildPetition(&denuncias.Dataset{}, 10001, time.Now(), loc)
	assert.ErrorIs(t, err, ErrFolioNotFound)
	_, err = BuildPetition(nil, 10001, time.Now(), loc)
	assert.ErrorIs(t, err, ErrFolioNotFound)
}
