package dto

// APIResponse envoltura uniforme para todas las respuestas JSON de la API.
type APIResponse struct {
	Success    bool          `json:"success"`
	Data       interface{}   `json:"data,omitempty"`
	Message    string        `json:"message,omitempty"`
	Error      string        `json:"error,omitempty"`
	StatusCode int           `json:"statusCode,omitempty"`
	Pagination *PageResponse `json:"pagination,omitempty"`
}

// OK respuesta exitosa con datos.
func OK(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// OKMessage respuesta exitosa con datos y mensaje.
func OKMessage(data interface{}, message string) APIResponse {
	return APIResponse{Success: true, Data: data, Message: message}
}

// OKPage respuesta exitosa de listado con metadatos de página.
func OKPage(data interface{}, page PageResponse) APIResponse {
	return APIResponse{Success: true, Data: data, Pagination: &page}
}

// Fail respuesta de error con el status HTTP correspondiente.
func Fail(statusCode int, errMsg string) APIResponse {
	return APIResponse{Success: false, Error: errMsg, StatusCode: statusCode}
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto y acota el límite.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas de listado.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}
