package ai

import (
	"fmt"

	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
)

// Instrucciones de sistema para el analista de issues
const (
	systemPromptEN = `You are an expert at analyzing GitHub issues and providing actionable summaries.

Your task is to analyze the provided GitHub issues and create a comprehensive summary that includes:

1. **Overview**: Brief summary of the repository's issue landscape
2. **Priority Analysis**: Identify high-priority issues based on comment engagement, labels (critical, bug, security), issue age and user impact
3. **Common Themes**: Identify recurring problems or requests
4. **Recommendations**: Suggest concrete actions for maintainers

Format your response in clear markdown with appropriate headers and bullet points.
Be concise but comprehensive. Focus on actionable insights.`

	systemPromptES = `Sos un experto en analizar issues de GitHub y producir resúmenes accionables.

Tu tarea es analizar los issues provistos y armar un resumen completo que incluya:

1. **Panorama general**: resumen breve del estado de los issues del repositorio
2. **Análisis de prioridades**: identificá los issues de alta prioridad según la cantidad de comentarios, las etiquetas (critical, bug, security), la antigüedad y el impacto en los usuarios
3. **Temas recurrentes**: identificá los problemas o pedidos que se repiten
4. **Recomendaciones**: sugerí acciones concretas para los mantenedores

Formateá la respuesta en markdown claro, con encabezados y viñetas.
Sé conciso pero completo. Enfocate en conclusiones accionables.`
)

// Templates para el resumen de un grupo de issues crudos
const (
	chunkPromptTemplateEN = `Please analyze these GitHub issues for %s:

==================================================
%s
==================================================

Provide a comprehensive summary following the guidelines in your instructions.`

	chunkPromptTemplateES = `Analizá estos issues de GitHub de %s:

==================================================
%s
==================================================

Armá un resumen completo siguiendo las pautas de tus instrucciones.`
)

// Templates para consolidar resúmenes parciales en uno final
const (
	finalPromptTemplateEN = `Please create a final, consolidated summary from these partial summaries of GitHub issues for %s.

Combine the insights from all parts into a single, coherent summary following the same structure as before.
Eliminate any redundancy and keep the most important insights.

Partial summaries:

%s`

	finalPromptTemplateES = `Armá un resumen final consolidado a partir de estos resúmenes parciales de issues de GitHub de %s.

Combiná las conclusiones de todas las partes en un único resumen coherente, con la misma estructura de antes.
Eliminá las redundancias y quedate con lo más importante.

Resúmenes parciales:

%s`
)

// GetSystemPrompt devuelve las instrucciones de sistema según el idioma
func GetSystemPrompt(lang string) string {
	switch lang {
	case "es":
		return systemPromptES
	default:
		return systemPromptEN
	}
}

// BuildUserPrompt arma el prompt de usuario para el pedido de resumen. Los
// pedidos de tipo chunk analizan issues crudos; los de tipo final consolidan
// resúmenes parciales. Cuando el nivel tiene más de una parte, el alcance
// incluye la posición del grupo.
func BuildUserPrompt(lang string, req models.SummaryRequest) string {
	scope := req.Repository
	if req.TotalParts > 1 {
		scope = fmt.Sprintf("%s (part %d/%d)", req.Repository, req.Part, req.TotalParts)
		if lang == "es" {
			scope = fmt.Sprintf("%s (parte %d/%d)", req.Repository, req.Part, req.TotalParts)
		}
	}

	template := getChunkPromptTemplate(lang)
	if req.Kind == models.SummaryKindFinal {
		template = getFinalPromptTemplate(lang)
	}
	return fmt.Sprintf(template, scope, req.Content)
}

func getChunkPromptTemplate(lang string) string {
	switch lang {
	case "es":
		return chunkPromptTemplateES
	default:
		return chunkPromptTemplateEN
	}
}

func getFinalPromptTemplate(lang string) string {
	switch lang {
	case "es":
		return finalPromptTemplateES
	default:
		return finalPromptTemplateEN
	}
}
