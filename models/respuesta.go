package models

// Estado values carried by every wire envelope.
const (
	EstadoExito = "exito"
	EstadoError = "error"
)

// Respuesta is the uniform wire envelope every operation result is
// normalized into before serialization. The field names are part of the
// public API contract and stay in Spanish.
//
// Success responses carry Estado "exito" plus optional Mensaje, Datos and
// Metadata. Error responses carry Estado "error", a human-readable Mensaje
// and optional Detalles (diagnostic detail is only included when the server
// runs in debug mode).
type Respuesta struct {
	Estado   string `json:"estado"`
	Mensaje  string `json:"mensaje,omitempty"`
	Datos    any    `json:"datos,omitempty"`
	Detalles any    `json:"detalles,omitempty"`
	Metadata any    `json:"metadata,omitempty"`
}

// Exito builds a success envelope around datos.
func Exito(datos any) Respuesta {
	return Respuesta{Estado: EstadoExito, Datos: datos}
}

// ExitoConMensaje builds a success envelope with a message and optional datos.
func ExitoConMensaje(mensaje string, datos any) Respuesta {
	return Respuesta{Estado: EstadoExito, Mensaje: mensaje, Datos: datos}
}

// Error builds an error envelope. detalles may be nil.
func Error(mensaje string, detalles any) Respuesta {
	return Respuesta{Estado: EstadoError, Mensaje: mensaje, Detalles: detalles}
}

// Paginacion is the pagination block returned under metadata.paginacion by
// paginated list operations.
type Paginacion struct {
	// Total is the number of rows in the whole table.
	Total int64 `json:"total"`

	// PaginaActual is the 1-based page that was requested.
	PaginaActual int `json:"pagina_actual"`

	// PorPagina is the requested page size.
	PorPagina int `json:"por_pagina"`

	// TotalPaginas is ceil(Total / PorPagina).
	TotalPaginas int `json:"total_paginas"`
}

// NewPaginacion derives the pagination block for a page request.
// TotalPaginas uses ceiling division so a partially filled last page counts.
func NewPaginacion(total int64, pagina, porPagina int) Paginacion {
	totalPaginas := int((total + int64(porPagina) - 1) / int64(porPagina))
	return Paginacion{
		Total:        total,
		PaginaActual: pagina,
		PorPagina:    porPagina,
		TotalPaginas: totalPaginas,
	}
}

// DetalleDuplicado is the structured detail attached to responses when a
// unique-constraint violation was decoded from the store error.
type DetalleDuplicado struct {
	// Tipo is always "duplicado".
	Tipo string `json:"tipo"`

	// Campo is the column whose unique constraint was violated.
	Campo string `json:"campo"`

	// Valor is the offending value, when the store reports it.
	Valor string `json:"valor,omitempty"`

	Mensaje string `json:"mensaje"`
}
