// Package responsable holds all cli commands for assignees
// e.g., tablero responsable ...
package responsable

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/styles"
	"github.com/thenoetrevino/tablero/internal/models"
	responsableservice "github.com/thenoetrevino/tablero/internal/services/responsable"
)

// ResponsableCmd returns the responsable parent command
func ResponsableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "responsable",
		Aliases: []string{"responsables", "r"},
		Short:   "Gestiona los responsables",
		Long: `Da de alta, actualiza, activa o desactiva y elimina responsables.

Un responsable con tareas asignadas no se puede eliminar.`,
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(ToggleCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// ListCmd returns the responsable list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista los responsables por nombre",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cmd.Flags().Bool("activos", false, "Solo los responsables activos")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, formatter, err := cli.Prepare(cmd)
	if err != nil {
		return err
	}

	var responsables []models.Responsable
	if activos, _ := cmd.Flags().GetBool("activos"); activos {
		responsables, err = cliInstance.Client.ListResponsablesActivos(ctx)
	} else {
		responsables, err = cliInstance.Client.ListResponsables(ctx)
	}
	if err != nil {
		return formatter.Fail(err)
	}

	ids := make([]int, len(responsables))
	for i, r := range responsables {
		ids[i] = r.ID
	}

	return formatter.Print(responsables, ids, func(w io.Writer) {
		if len(responsables) == 0 {
			fmt.Fprintln(w, "No hay responsables")
			return
		}
		fmt.Fprintf(w, "Se encontraron %d responsables:\n\n", len(responsables))
		for _, r := range responsables {
			writeResponsable(w, r)
		}
	})
}

// CreateCmd returns the responsable create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Da de alta un responsable",
		Long: `Da de alta un responsable. Nombre y email son obligatorios y únicos.

Ejemplo:
  tablero responsable create --nombre="Lucía Pérez" --email=lucia@empresa.com`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	cmd.Flags().String("nombre", "", "Nombre del responsable")
	cmd.Flags().String("email", "", "Email del responsable")
	cmd.Flags().Bool("inactivo", false, "Crear el responsable desactivado")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, formatter, err := cli.Prepare(cmd)
	if err != nil {
		return err
	}

	nombre, _ := cmd.Flags().GetString("nombre")
	email, _ := cmd.Flags().GetString("email")
	req := responsableservice.CreateResponsableRequest{Nombre: nombre, Email: email}
	if inactivo, _ := cmd.Flags().GetBool("inactivo"); inactivo {
		activo := false
		req.Activo = &activo
	}

	r, err := cliInstance.Client.CreateResponsable(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Print(r, []int{r.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Responsable '%s' creado (ID: %d)\n", r.Nombre, r.ID)
	})
}

// UpdateCmd returns the responsable update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Cambia el nombre o el email de un responsable",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdate,
	}

	cmd.Flags().String("nombre", "", "Nuevo nombre")
	cmd.Flags().String("email", "", "Nuevo email")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, formatter, err := cli.Prepare(cmd)
	if err != nil {
		return err
	}

	id, err := cli.ParseID(args[0], "el ID del responsable")
	if err != nil {
		return formatter.Fail(err)
	}

	var req responsableservice.UpdateResponsableRequest
	if cmd.Flags().Changed("nombre") {
		v, _ := cmd.Flags().GetString("nombre")
		req.Nombre = &v
	}
	if cmd.Flags().Changed("email") {
		v, _ := cmd.Flags().GetString("email")
		req.Email = &v
	}
	if req.Nombre == nil && req.Email == nil {
		return formatter.Fail(cli.UsageError("indica --nombre o --email"))
	}

	r, err := cliInstance.Client.UpdateResponsable(ctx, id, req)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Print(r, []int{r.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Responsable %d actualizado\n", r.ID)
		writeResponsable(w, *r)
	})
}

// ToggleCmd returns the responsable toggle subcommand
func ToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Activa o desactiva un responsable",
		Args:  cobra.ExactArgs(1),
		RunE:  runToggle,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runToggle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, formatter, err := cli.Prepare(cmd)
	if err != nil {
		return err
	}

	id, err := cli.ParseID(args[0], "el ID del responsable")
	if err != nil {
		return formatter.Fail(err)
	}

	r, err := cliInstance.Client.ToggleResponsable(ctx, id)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Print(r, []int{r.ID}, func(w io.Writer) {
		estado := "desactivado"
		if r.Activo {
			estado = "activado"
		}
		fmt.Fprintf(w, "✓ Responsable '%s' %s\n", r.Nombre, estado)
	})
}

// DeleteCmd returns the responsable delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina un responsable sin tareas asignadas",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, formatter, err := cli.Prepare(cmd)
	if err != nil {
		return err
	}

	id, err := cli.ParseID(args[0], "el ID del responsable")
	if err != nil {
		return formatter.Fail(err)
	}

	if err := cliInstance.Client.DeleteResponsable(ctx, id); err != nil {
		return formatter.Fail(err)
	}

	return formatter.Print(map[string]any{"id": id, "eliminado": true}, []int{id}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Responsable %d eliminado\n", id)
	})
}

func writeResponsable(w io.Writer, r models.Responsable) {
	line := fmt.Sprintf("  [%d] %s <%s>", r.ID, r.Nombre, r.Email)
	if !r.Activo {
		line += " " + styles.SubtitleStyle.Render("(inactivo)")
	}
	fmt.Fprintln(w, line)
}
