package config

// DefaultCatalog returns the factory impact/cause catalog. It is installed
// when no catalog file exists yet, and can be restored from the settings
// surface at any time.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Impacts: []ImpactEntry{
			{
				Label:  "Paro de Ensamble",
				Active: true,
				Causes: activeCauses(
					"Falla de equipo",
					"Falta de material",
					"Material incorrecto",
					"Material en hold de calidad",
					"Instrucción de trabajo incorrecta / no disponible",
					"Falta de Personal",
					"Personal no capacitado",
					"Ausentismo",
					"Retraso en surtido interno",
					"Defecto detectado en Máquina",
					"Contención activa",
					"Cambio urgente de prioridad",
				),
			},
			{
				Label:  "Retrabajo",
				Active: true,
				Causes: activeCauses(
					"Defecto de material",
					"Especificación incorrecta",
					"Instrucción de trabajo no clara",
					"Método no estandarizado",
					"Error de ensamble",
					"Falta de capacitación",
					"Cambio Eng no implementado",
					"Criterio de aceptación incorrecto",
					"Defecto de proveedor",
				),
			},
			{
				Label:  "Mejora del Proceso",
				Active: true,
				Causes: activeCauses(
					"Tiempo ciclo alto",
					"Cuello de botella",
					"Alta tasa de defectos",
					"Variabilidad del proceso",
					"Riesgo ergonómico",
					"Riesgo de accidente",
					"Scrap elevado",
					"Uso excesivo de consumibles",
					"Exceso de movimiento",
					"Layout ineficiente",
					"Proceso no estandarizado",
					"Secuencia ineficiente",
					"Falta de trazabilidad",
					"Registro manual",
					"Abasto ineficiente",
					"Inventario innecesario",
				),
			},
			{
				Label:  "Falta de Material",
				Active: true,
				Causes: activeCauses(
					"Error en MRP",
					"Demanda mayor al forecast",
					"Inventario incorrecto en sistema",
					"Ubicación incorrecta",
					"Error de surtido",
					"Proveedor on hold",
					"Retraso de proveedor",
					"Entrega incompleta",
					"Problema de capacidad",
					"Material on hold",
					"Rechazo de lote",
					"Cambio de PN sin stock",
					"Retraso en transporte",
				),
			},
		},
	}
}

func activeCauses(labels ...string) []CauseEntry {
	causes := make([]CauseEntry, 0, len(labels))
	for _, label := range labels {
		causes = append(causes, CauseEntry{Label: label, Active: true})
	}
	return causes
}
