package models

type TareaPublicadaEvent struct {
	TareaID      string `json:"tarea_id"`
	ClaseID      string `json:"clase_id"`
	Titulo       string `json:"titulo"`
	FechaEntrega *int64 `json:"fecha_entrega,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}

type EntregaCalificadaEvent struct {
	EntregaID string  `json:"entrega_id"`
	TareaID   string  `json:"tarea_id"`
	AlumnoID  string  `json:"alumno_id"`
	Nota      float64 `json:"nota"`
	Timestamp int64   `json:"timestamp"`
}
