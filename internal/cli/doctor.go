package cli

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"gestao-cli/internal/gateway"
	"gestao-cli/internal/logging"

	"github.com/spf13/cobra"
)

var errDoctorIssuesFound = errors.New("a API apresentou falhas")

type doctorCheck struct {
	Recurso   string `json:"recurso"`
	Caminho   string `json:"caminho"`
	OK        bool   `json:"ok"`
	Registros int    `json:"registros"`
	Latencia  string `json:"latencia"`
	Erro      string `json:"erro,omitempty"`
}

type doctorReport []doctorCheck

func (doctorReport) Header() []string {
	return []string{"Recurso", "Caminho", "Status", "Registros", "Latência", "Erro"}
}
func (r doctorReport) Records() any { return []doctorCheck(r) }
func (r doctorReport) Rows() [][]string {
	rows := make([][]string, 0, len(r))
	for _, c := range r {
		status := "ok"
		if !c.OK {
			status = "falha"
		}
		rows = append(rows, []string{c.Recurso, c.Caminho, status, strconv.Itoa(c.Registros), c.Latencia, c.Erro})
	}
	return rows
}

func (r doctorReport) hasErrors() bool {
	for _, c := range r {
		if !c.OK {
			return true
		}
	}
	return false
}

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Verifica se cada coleção da API responde",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.open(cmd.Context(), logging.Options{Out: cmd.ErrOrStderr(), Console: true})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.close()

			report := checkAll(cmd.Context(), s.client.Resources())
			if err := writeOut(cmd, app, report); err != nil {
				return err
			}
			if fail && report.hasErrors() {
				return writeErr(cmd, errDoctorIssuesFound)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Termina com erro se alguma coleção falhar")
	return cmd
}

type collectionCheck struct {
	name string
	path string
	list func(context.Context) (int, error)
}

func checkOf[E any](name string, r *gateway.Resource[E]) collectionCheck {
	return collectionCheck{name: name, path: r.Path(), list: func(ctx context.Context) (int, error) {
		items, err := r.List(ctx)
		return len(items), err
	}}
}

// checkAll lists every collection concurrently; the report keeps a fixed
// order regardless of which call finishes first.
func checkAll(ctx context.Context, res gateway.Resources) doctorReport {
	checks := []collectionCheck{
		checkOf("operacoes", res.Operacoes),
		checkOf("produtos", res.Produtos),
		checkOf("tags", res.Tags),
		checkOf("usuarios", res.Usuarios),
		checkOf("categorias", res.Categorias),
	}

	report := make(doctorReport, len(checks))
	var wg sync.WaitGroup
	for i, p := range checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			n, err := p.list(ctx)
			c := doctorCheck{
				Recurso:   p.name,
				Caminho:   p.path,
				OK:        err == nil,
				Registros: n,
				Latencia:  time.Since(start).Round(time.Millisecond).String(),
			}
			if err != nil {
				c.Erro = err.Error()
			}
			report[i] = c
		}()
	}
	wg.Wait()
	return report
}
