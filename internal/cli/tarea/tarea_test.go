package tarea

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/testutil"
	"github.com/thenoetrevino/tablero/internal/testutil/apitest"
	clitest "github.com/thenoetrevino/tablero/internal/testutil/cli"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// seed creates two Creada tasks and one En progreso task, oldest first
func seed(t *testing.T, env *apitest.Env) []*models.Tarea {
	t.Helper()
	return []*models.Tarea{
		testutil.CreateTestTarea(t, env.Repo, "Diseño", "María García", models.EstadoCreada),
		testutil.CreateTestTarea(t, env.Repo, "Backend", "Juan Henao", models.EstadoCreada),
		testutil.CreateTestTarea(t, env.Repo, "Despliegue", "María García", models.EstadoEnProgreso),
	}
}

func run(t *testing.T, env *apitest.Env, args ...string) clitest.Result {
	t.Helper()
	return clitest.ExecuteCommand(t, env, TareaCmd(), args...)
}

func idArg(id int) string {
	return strconv.Itoa(id)
}

// ============================================================================
// LIST
// ============================================================================

func TestList_Human(t *testing.T) {
	env := clitest.SetupCLITest(t)
	seed(t, env)

	res := run(t, env, "list")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "Se encontraron 3 tareas:")
	assert.Contains(t, res.Stdout, "Diseño · Media · María García · Creada")
	assert.Contains(t, res.Stdout, "Despliegue · Media · María García · En progreso")
}

func TestList_Quiet(t *testing.T) {
	env := clitest.SetupCLITest(t)
	tareas := seed(t, env)

	res := run(t, env, "list", "--quiet")
	require.NoError(t, res.Err)

	// newest first
	want := fmt.Sprintf("%d\n%d\n%d\n", tareas[2].ID, tareas[1].ID, tareas[0].ID)
	assert.Equal(t, want, res.Stdout)
}

func TestList_JSON(t *testing.T) {
	env := clitest.SetupCLITest(t)
	seed(t, env)

	res := run(t, env, "list", "--json", "--estado", "en-progreso")
	require.NoError(t, res.Err)

	result := clitest.ParseJSON(t, res.Stdout)
	assert.Equal(t, true, result["success"])
	data := result["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "Despliegue", data[0].(map[string]any)["titulo"])
}

func TestList_Filters(t *testing.T) {
	env := clitest.SetupCLITest(t)
	seed(t, env)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"by responsable substring", []string{"--responsable", "maría"}, 2},
		{"responsable and estado", []string{"--responsable", "maría", "--estado", "Creada"}, 1},
		{"by text", []string{"--buscar", "BACK"}, 1},
		{"by prioridad", []string{"--prioridad", "alta"}, 0},
		{"no filter", nil, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := run(t, env, append([]string{"list", "--quiet"}, tc.args...)...)
			require.NoError(t, res.Err)
			assert.Len(t, strings.Fields(res.Stdout), tc.want)
		})
	}
}

func TestList_Empty(t *testing.T) {
	env := clitest.SetupCLITest(t)

	res := run(t, env, "list")
	require.NoError(t, res.Err)
	assert.Equal(t, "No hay tareas\n", res.Stdout)
}

func TestList_Tablero(t *testing.T) {
	env := clitest.SetupCLITest(t)
	seed(t, env)

	res := run(t, env, "list", "--tablero")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "Creada (2)")
	assert.Contains(t, res.Stdout, "En progreso (1)")
	assert.Contains(t, res.Stdout, "Cancelada (0)")
	assert.Contains(t, res.Stdout, "  Sin tareas")
	assert.Less(t, strings.Index(res.Stdout, "Creada (2)"), strings.Index(res.Stdout, "Bloqueada (0)"))
}

func TestList_InvalidEstado(t *testing.T) {
	env := clitest.SetupCLITest(t)

	res := run(t, env, "list", "--estado", "pendiente")
	assert.Equal(t, cli.ExitValidation, res.Code)
	assert.Contains(t, res.Stderr, `estado inválido "pendiente"`)
}

// ============================================================================
// SHOW
// ============================================================================

func TestShow(t *testing.T) {
	env := clitest.SetupCLITest(t)
	tareas := seed(t, env)
	testutil.CreateTestComentario(t, env.Repo, tareas[0].ID, "Primer borrador listo")

	res := run(t, env, "show", idArg(tareas[0].ID))
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, fmt.Sprintf("#%d: Diseño", tareas[0].ID))
	assert.Contains(t, res.Stdout, "Descripción de Diseño")
	assert.Contains(t, res.Stdout, "Comentarios (1)")
	assert.Contains(t, res.Stdout, "Primer borrador listo")
	assert.Contains(t, res.Stdout, "0h trabajadas")
}

func TestShow_JSON(t *testing.T) {
	env := clitest.SetupCLITest(t)
	tareas := seed(t, env)

	res := run(t, env, "show", idArg(tareas[1].ID), "--json")
	require.NoError(t, res.Err)

	data := clitest.ParseJSON(t, res.Stdout)["data"].(map[string]any)
	assert.Equal(t, "Backend", data["titulo"])
	assert.Equal(t, []any{}, data["etiquetas"])
}

func TestShow_Errors(t *testing.T) {
	env := clitest.SetupCLITest(t)

	res := run(t, env, "show", "999")
	assert.Equal(t, cli.ExitNotFound, res.Code)
	assert.Equal(t, "❌ Error: Tarea no encontrada\n", res.Stderr)

	res = run(t, env, "show", "abc")
	assert.Equal(t, cli.ExitUsage, res.Code)

	res = run(t, env, "show", "999", "--json")
	assert.Equal(t, cli.ExitNotFound, res.Code)
	result := clitest.ParseJSON(t, res.Stdout)
	assert.Equal(t, false, result["success"])
	errData := result["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errData["code"])
	assert.Equal(t, "Tarea no encontrada", errData["message"])
}

func TestShow_MissingArgument(t *testing.T) {
	env := clitest.SetupCLITest(t)

	res := run(t, env, "show")
	require.Error(t, res.Err)
	assert.Equal(t, cli.ExitUsage, res.Code, "cobra argument errors are usage errors")
}

// ============================================================================
// CREATE
// ============================================================================

func TestCreate(t *testing.T) {
	env := clitest.SetupCLITest(t)

	res := run(t, env, "create",
		"--titulo", "Migrar datos",
		"--descripcion", "De SQLite a Postgres",
		"--responsable", "Ana Martínez",
		"--estado", "bloqueada",
		"--prioridad", "critica",
		"--etiquetas", "backend, datos,,",
		"--vence", "2025-03-01",
		"--estimado", "12.5",
		"--quiet",
	)
	require.NoError(t, res.Err)

	id, err := strconv.Atoi(strings.TrimSpace(res.Stdout))
	require.NoError(t, err)

	created, err := env.Repo.GetTareaByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Migrar datos", created.Titulo)
	assert.Equal(t, models.EstadoBloqueada, created.Estado)
	assert.Equal(t, models.PrioridadCritica, created.Prioridad)
	assert.Equal(t, []string{"backend", "datos"}, created.Etiquetas)
	require.NotNil(t, created.TiempoEstimado)
	assert.Equal(t, 12.5, *created.TiempoEstimado)
	require.NotNil(t, created.FechaVencimiento)
	assert.Equal(t, "2025-03-01", created.FechaVencimiento.Local().Format("2006-01-02"))
}

func TestCreate_Defaults(t *testing.T) {
	env := clitest.SetupCLITest(t)

	res := run(t, env, "create", "--titulo", "Simple", "--descripcion", "x", "--responsable", "Juan Henao")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "✓ Tarea 'Simple' creada")
	assert.Contains(t, res.Stdout, "Estado: Creada")
	assert.Contains(t, res.Stdout, "Prioridad: Media")
}

func TestCreate_DescripcionFromStdin(t *testing.T) {
	env := clitest.SetupCLITest(t)

	res := clitest.ExecuteCommandWithInput(t, env, TareaCmd(), "# Notas\n\n- paso uno\n",
		"create", "--titulo", "Desde stdin", "--descripcion", "-", "--responsable", "Juan Henao", "--json")
	require.NoError(t, res.Err)

	data := clitest.ParseJSON(t, res.Stdout)["data"].(map[string]any)
	assert.Equal(t, "# Notas\n\n- paso uno", data["descripcion"])
}

func TestCreate_Errors(t *testing.T) {
	env := clitest.SetupCLITest(t)

	tests := []struct {
		name     string
		args     []string
		code     int
		contains string
	}{
		{
			name:     "server validation",
			args:     []string{"--titulo", "Sin descripción", "--responsable", "Juan Henao"},
			code:     cli.ExitValidation,
			contains: "La descripción es requerida",
		},
		{
			name:     "unknown prioridad",
			args:     []string{"--titulo", "x", "--descripcion", "x", "--responsable", "x", "--prioridad", "urgente"},
			code:     cli.ExitValidation,
			contains: `prioridad inválida "urgente"`,
		},
		{
			name:     "bad date",
			args:     []string{"--titulo", "x", "--descripcion", "x", "--responsable", "x", "--vence", "mañana"},
			code:     cli.ExitDataErr,
			contains: `fecha inválida "mañana"`,
		},
		{
			name:     "negative hours",
			args:     []string{"--titulo", "x", "--descripcion", "x", "--responsable", "x", "--estimado", "-1"},
			code:     cli.ExitDataErr,
			contains: "horas inválidas",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := run(t, env, append([]string{"create"}, tc.args...)...)
			assert.Equal(t, tc.code, res.Code)
			assert.Contains(t, res.Stderr, tc.contains)
			assert.Empty(t, res.Stdout)
		})
	}

	tareas, err := env.Repo.GetAllTareas(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tareas)
}

// ============================================================================
// UPDATE / MOVE
// ============================================================================

func TestUpdate(t *testing.T) {
	env := clitest.SetupCLITest(t)
	tareas := seed(t, env)
	id := tareas[0].ID

	res := run(t, env, "update", idArg(id), "--prioridad", "alta", "--trabajado", "3", "--etiquetas", "ux")
	require.NoError(t, res.Err)
	assert.Equal(t, fmt.Sprintf("✓ Tarea %d actualizada\n", id), res.Stdout)

	updated, err := env.Repo.GetTareaByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.PrioridadAlta, updated.Prioridad)
	assert.Equal(t, 3.0, updated.TiempoTrabajado)
	assert.Equal(t, []string{"ux"}, updated.Etiquetas)
	assert.Equal(t, "Diseño", updated.Titulo, "untouched fields keep their value")

	// an explicitly empty list clears the tags
	res = run(t, env, "update", idArg(id), "--etiquetas=")
	require.NoError(t, res.Err)
	updated, err = env.Repo.GetTareaByID(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, updated.Etiquetas)
}

func TestUpdate_EmptyValueClearsDateAndEstimate(t *testing.T) {
	env := clitest.SetupCLITest(t)
	tareas := seed(t, env)
	id := tareas[0].ID

	res := run(t, env, "update", idArg(id), "--vence", "2026-12-31", "--estimado", "4")
	require.NoError(t, res.Err)
	updated, err := env.Repo.GetTareaByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, updated.FechaVencimiento)
	require.NotNil(t, updated.TiempoEstimado)

	res = run(t, env, "update", idArg(id), "--vence=", "--estimado=")
	require.NoError(t, res.Err)
	updated, err = env.Repo.GetTareaByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, updated.FechaVencimiento)
	assert.Nil(t, updated.TiempoEstimado)
	assert.Equal(t, "Diseño", updated.Titulo)
}

func TestUpdate_Errors(t *testing.T) {
	env := clitest.SetupCLITest(t)
	tareas := seed(t, env)

	res := run(t, env, "update", idArg(tareas[0].ID))
	assert.Equal(t, cli.ExitUsage, res.Code)
	assert.Contains(t, res.Stderr, "indica al menos un campo")

	res = run(t, env, "update", "999", "--titulo", "x")
	assert.Equal(t, cli.ExitNotFound, res.Code)

	res = run(t, env, "update", idArg(tareas[0].ID), "--titulo", " ")
	assert.Equal(t, cli.ExitValidation, res.Code)
	assert.Contains(t, res.Stderr, "El título no puede estar vacío")
}

func TestMove(t *testing.T) {
	env := clitest.SetupCLITest(t)
	tareas := seed(t, env)
	id := tareas[0].ID

	res := run(t, env, "move", idArg(id), "EN_PROGRESO")
	require.NoError(t, res.Err)
	assert.Equal(t, "✓ \"Diseño\" movida de Creada a En progreso\n", res.Stdout)

	moved, err := env.Repo.GetTareaByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.EstadoEnProgreso, moved.Estado)

	res = run(t, env, "move", idArg(id), "en progreso")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "ya está en En progreso")

	res = run(t, env, "move", idArg(id), "archivada")
	assert.Equal(t, cli.ExitValidation, res.Code)

	res = run(t, env, "move", "999", "creada")
	assert.Equal(t, cli.ExitNotFound, res.Code)
}

// ============================================================================
// DELETE
// ============================================================================

func TestDelete_Confirmation(t *testing.T) {
	env := clitest.SetupCLITest(t)
	tareas := seed(t, env)
	id := tareas[0].ID
	ctx := context.Background()

	res := clitest.ExecuteCommandWithInput(t, env, TareaCmd(), "n\n", "delete", idArg(id))
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, `¿Eliminar la tarea "Diseño" y sus 0 comentarios?`)
	assert.Contains(t, res.Stdout, "Cancelado")
	_, err := env.Repo.GetTareaByID(ctx, id)
	assert.NoError(t, err, "still present")

	res = clitest.ExecuteCommandWithInput(t, env, TareaCmd(), "sí\n", "delete", idArg(id))
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, fmt.Sprintf("✓ Tarea %d eliminada", id))
	_, err = env.Repo.GetTareaByID(ctx, id)
	assert.Error(t, err)
}

func TestDelete_NoPromptForAgents(t *testing.T) {
	env := clitest.SetupCLITest(t)
	tareas := seed(t, env)

	res := run(t, env, "delete", idArg(tareas[1].ID), "--quiet")
	require.NoError(t, res.Err)
	assert.Equal(t, idArg(tareas[1].ID)+"\n", res.Stdout)

	res = run(t, env, "delete", idArg(tareas[2].ID), "--json")
	require.NoError(t, res.Err)
	data := clitest.ParseJSON(t, res.Stdout)["data"].(map[string]any)
	assert.Equal(t, true, data["eliminada"])

	res = run(t, env, "delete", idArg(tareas[0].ID), "-f")
	require.NoError(t, res.Err)
	assert.NotContains(t, res.Stdout, "¿Eliminar")

	res = run(t, env, "delete", idArg(tareas[0].ID), "-f")
	assert.Equal(t, cli.ExitNotFound, res.Code)
}

// ============================================================================
// COMMENT
// ============================================================================

func TestComment(t *testing.T) {
	env := clitest.SetupCLITest(t)
	tareas := seed(t, env)
	id := tareas[0].ID

	res := run(t, env, "comment", idArg(id), "Revisado", "por", "QA", "--json")
	require.NoError(t, res.Err)
	data := clitest.ParseJSON(t, res.Stdout)["data"].(map[string]any)
	assert.Equal(t, "Revisado por QA", data["contenido"])
	assert.Equal(t, clitest.TestUsuario, data["autor"])
	assert.Equal(t, "comentario", data["tipo"])

	comentarioID := int(data["id"].(float64))

	res = run(t, env, "comment", idArg(id), "Bloqueado por infraestructura", "--autor", "Ana", "--tipo", "cambio_estado")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "por Ana")

	res = run(t, env, "comment", "--delete", idArg(comentarioID))
	require.NoError(t, res.Err)
	assert.Equal(t, fmt.Sprintf("✓ Comentario %d eliminado\n", comentarioID), res.Stdout)

	tarea, err := env.Repo.GetTareaByID(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, tarea.Comentarios, 1)
	assert.Equal(t, models.TipoComentarioCambioEstado, tarea.Comentarios[0].Tipo)
}

func TestComment_Errors(t *testing.T) {
	env := clitest.SetupCLITest(t)
	tareas := seed(t, env)

	res := run(t, env, "comment", idArg(tareas[0].ID))
	assert.Equal(t, cli.ExitUsage, res.Code)
	assert.Contains(t, res.Stderr, "falta el texto")

	res = run(t, env, "comment", "999", "hola")
	assert.Equal(t, cli.ExitNotFound, res.Code)

	res = run(t, env, "comment", idArg(tareas[0].ID), "hola", "--tipo", "queja")
	assert.Equal(t, cli.ExitValidation, res.Code)

	res = run(t, env, "comment", "--delete", "999")
	assert.Equal(t, cli.ExitNotFound, res.Code)
	assert.Contains(t, res.Stderr, "Comentario no encontrado")
}

// ============================================================================
// STATS
// ============================================================================

func TestStats(t *testing.T) {
	env := clitest.SetupCLITest(t)
	seed(t, env)

	res := run(t, env, "stats")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "Por estado")
	assert.Contains(t, res.Stdout, fmt.Sprintf("  %-12s %d\n", "Creada", 2))
	assert.Contains(t, res.Stdout, fmt.Sprintf("  %-12s %d\n", "Total", 3))
	assert.Contains(t, res.Stdout, fmt.Sprintf("  %-20s %d\n", "María García", 2))
	assert.Less(t, strings.Index(res.Stdout, "Juan Henao"), strings.Index(res.Stdout, "María García"))

	res = run(t, env, "stats", "--json")
	require.NoError(t, res.Err)
	data := clitest.ParseJSON(t, res.Stdout)["data"].(map[string]any)
	assert.Equal(t, float64(1), data["En progreso"])
	assert.Equal(t, float64(2), data[models.ResponsableStatKey("María García")])

	// stats has no ids to print
	res = run(t, env, "stats", "--quiet")
	require.NoError(t, res.Err)
	assert.Empty(t, res.Stdout)
}

// ============================================================================
// CONNECTIVITY
// ============================================================================

func TestUnreachableAPI(t *testing.T) {
	env := &apitest.Env{BaseURL: "http://127.0.0.1:1/api"}

	res := run(t, env, "list")
	assert.Equal(t, cli.ExitError, res.Code)
	assert.Contains(t, res.Stderr, "❌ Error:")
	assert.Contains(t, res.Stderr, "💡 Sugerencia: Comprueba que la API está en marcha")
}
