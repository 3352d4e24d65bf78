package i18n

// messages is the es-MX copy. Keys are stable identifiers used by templates.
var messages = map[string]string{
	"site.title":    "Data For All",
	"brand.name":    "DATA FOR ALL",
	"brand.tagline": "Datos abiertos. Puertas abiertas.",

	"nav.orientador": "¿Dónde Denuncio?",
	"nav.track":      "Rastrear",
	"nav.guide":      "Guía",
	"nav.open_data":  "Datos Abiertos",
	"nav.programs":   "Programas sociales",
	"nav.panel":      "Ir al panel",
	"nav.logout":     "Cerrar sesión",
	"nav.login":      "Inicio de sesión",

	"hero.title":    "Tu denuncia cuenta. Dale seguimiento.",
	"hero.subtitle": "Consulta el avance de tu caso con datos abiertos de la Ciudad de México y conoce qué sigue en el proceso.",
	"hero.cta":      "Rastrear mi Petición",

	"tracking.title":         "Rastrea el estado de tu denuncia",
	"tracking.lead":          "Ingresa el folio que se te proporcionó para consultar el avance de tu caso dentro del sistema.",
	"tracking.label":         "Folio de denuncia",
	"tracking.placeholder":   "Ejemplo: 10001",
	"tracking.submit":        "Buscar denuncia",
	"tracking.source_prefix": "Mostrando información proveniente de:",
	"tracking.source_api":    "API oficial de datos abiertos",
	"tracking.source_mock":   "datos de demostración",

	"petition.heading":              "Resultado de la búsqueda",
	"petition.folio":                "Folio",
	"petition.general":              "Datos generales",
	"petition.issued":               "Fecha de emisión",
	"petition.reason":               "Motivo",
	"petition.state":                "Estado actual",
	"petition.official":             "Servidor público",
	"petition.agency":               "Alcaldía u organismo",
	"petition.position":             "Cargo",
	"petition.fault_type":           "Tipo de falta",
	"petition.investigating_unit":   "Unidad investigadora",
	"petition.complaint_id":         "ID de denuncia",
	"petition.complainant":          "Denunciante",
	"petition.complainant_quality":  "Calidad del denunciante",
	"petition.fault":                "Falta",
	"petition.fault_area":           "Área o proyecto vinculado",
	"petition.investigation":        "Investigación",
	"petition.legal_terms":          "Plazos legales",
	"petition.precautionary":        "Medidas cautelares",
	"petition.relation":             "Relación con la denuncia",
	"petition.investigation_status": "Estado de la investigación",
	"petition.last_update":          "Última actualización",
	"petition.progress":             "Avance",
	"petition.timeline":             "Historial",

	"guide.title": "¿Cómo se realiza una denuncia?",
	"guide.lead":  "Antes de iniciar, revisa estos pasos rápidos para presentar tu denuncia, queja o petición y darle mejor seguimiento a tu folio.",
	"guide.prev":  "Ver paso anterior",
	"guide.next":  "Ver siguiente paso",

	"guide.step1.title":       "Define tu caso",
	"guide.step1.description": "Identifica si lo tuyo es denuncia, queja o petición para usar la vía correcta.",
	"guide.step2.title":       "Reúne la información básica",
	"guide.step2.description": "Anota fecha, lugar, dependencia y una descripción clara de lo que ocurrió.",
	"guide.step3.title":       "Protege tus datos",
	"guide.step3.description": "Decide si quieres denunciar con tus datos o de forma anónima, según el canal.",
	"guide.step4.title":       "Elige la plataforma adecuada",
	"guide.step4.description": "Según el tipo de caso, usa la plataforma oficial que te sugerimos en Data For All.",
	"guide.step5.title":       "Guarda tu folio",
	"guide.step5.description": "Después de enviar, conserva tu folio para poder rastrear el avance de tu caso.",

	"login.title":             "Iniciar sesión",
	"login.lead":              "Accede a tu panel para guardar y consultar el estado de tus denuncias.",
	"login.email":             "Correo electrónico",
	"login.email_placeholder": "tucorreo@ejemplo.com",
	"login.password":          "Contraseña",
	"login.submit":            "Entrar",
	"login.no_account":        "¿No tienes cuenta?",
	"login.signup":            "Crear cuenta",
	"login.failed":            "Ocurrió un error al iniciar sesión. Intenta de nuevo.",

	"admin.title":      "Panel",
	"admin.greeting":   "Hola, %s",
	"admin.recent":     "Folios consultados recientemente",
	"admin.empty":      "Aún no has consultado ningún folio.",
	"admin.track_link": "Ver seguimiento",
	"admin.search":     "Buscar otro folio",

	"page.orientador.title": "¿Dónde Denuncio?",
	"page.guide.title":      "Guía para denunciar",
	"page.open_data.title":  "Datos Abiertos",
	"page.programs.title":   "Programas sociales",
	"page.signup.title":     "Crear cuenta",
	"page.soon":             "Esta sección estará disponible próximamente.",

	"notfound.title": "Página no encontrada",
	"notfound.body":  "La página que buscas no existe o fue movida.",
	"notfound.home":  "Volver al inicio",

	"footer.text": "Data For All · Datos abiertos para la ciudadanía",
}
