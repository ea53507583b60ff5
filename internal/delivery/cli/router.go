package cli

import (
	"tekhe-dashboard/internal/delivery/cli/handler"
	"tekhe-dashboard/internal/delivery/cli/middleware"
	"tekhe-dashboard/pkg/response"

	"github.com/spf13/cobra"
)

const FlagDataset = "dataset"

// Handlers groups the command handlers built over one dataset snapshot
type Handlers struct {
	Dashboard   *handler.DashboardHandler
	Patient     *handler.PatientHandler
	Referral    *handler.ReferralHandler
	Alert       *handler.AlertHandler
	Quality     *handler.QualityHandler
	Diagnostics *handler.DiagnosticsHandler
}

// WireFunc loads the dataset at path and builds the handlers over it
type WireFunc func(datasetPath string) (*Handlers, error)

type Router struct {
	root            *cobra.Command
	wire            WireFunc
	handlers        *Handlers
	actorMiddleware *middleware.ActorMiddleware
	datasetPath     string
}

func NewRouter(wire WireFunc, actorMiddleware *middleware.ActorMiddleware, datasetPath string) *Router {
	return &Router{
		wire:            wire,
		actorMiddleware: actorMiddleware,
		datasetPath:     datasetPath,
	}
}

func (r *Router) Setup() *cobra.Command {
	r.root = &cobra.Command{
		Use:               "tekhe",
		Short:             "Maternal and child health dashboard",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: r.load,
	}

	flags := r.root.PersistentFlags()
	flags.String(FlagDataset, r.datasetPath, "path to the JSON dataset snapshot")
	flags.String(middleware.FlagActorID, "", "caller id")
	flags.String(middleware.FlagRole, "", "caller role; unknown roles see no data")
	flags.String(middleware.FlagScope, "", "structure id (facility_manager) or district id (district roles)")

	kpi := &cobra.Command{
		Use:   "kpi",
		Short: "Compute dashboard indicators",
		Args:  cobra.NoArgs,
		RunE:  r.identify(func(cmd *cobra.Command, args []string) error { return r.handlers.Dashboard.GetKpis(cmd, args) }),
	}
	handler.AddFilterFlags(kpi)

	patients := &cobra.Command{
		Use:   "patients",
		Short: "List patients in scope",
		Args:  cobra.NoArgs,
		RunE:  r.identify(func(cmd *cobra.Command, args []string) error { return r.handlers.Patient.List(cmd, args) }),
	}
	handler.AddFilterFlags(patients)

	patient := &cobra.Command{
		Use:   "patient <id>",
		Short: "Show one patient with visits, risk, immunizations and referrals",
		Args:  cobra.ExactArgs(1),
		RunE:  r.identify(func(cmd *cobra.Command, args []string) error { return r.handlers.Patient.Detail(cmd, args) }),
	}

	referrals := &cobra.Command{
		Use:   "referrals",
		Short: "List SONU referral timelines",
		Args:  cobra.NoArgs,
		RunE:  r.identify(func(cmd *cobra.Command, args []string) error { return r.handlers.Referral.List(cmd, args) }),
	}
	handler.AddFilterFlags(referrals)

	// Field roles only
	alert := &cobra.Command{
		Use:   "alert <patient-id>",
		Short: "Raise a SONU alert for a red-risk patient",
		Args:  cobra.ExactArgs(1),
		RunE: r.identify(middleware.RequireField(func(cmd *cobra.Command, args []string) error {
			return r.handlers.Alert.Escalate(cmd, args)
		})),
	}

	// Facility and district roles only
	quality := &cobra.Command{
		Use:   "quality",
		Short: "Report data quality issues",
		Args:  cobra.NoArgs,
		RunE: r.identify(middleware.RequireManager(func(cmd *cobra.Command, args []string) error {
			return r.handlers.Quality.Report(cmd, args)
		})),
	}
	handler.AddFilterFlags(quality)

	diagnostics := &cobra.Command{
		Use:   "diagnostics",
		Short: "Show orphan, timeline and alert counters for one scoping pass",
		Args:  cobra.NoArgs,
		RunE:  r.identify(func(cmd *cobra.Command, args []string) error { return r.handlers.Diagnostics.Show(cmd, args) }),
	}

	r.root.AddCommand(kpi, patients, patient, referrals, alert, quality, diagnostics)
	return r.root
}

func (r *Router) identify(next middleware.RunE) func(*cobra.Command, []string) error {
	return r.actorMiddleware.Identify(next)
}

// load wires the handlers on first use so --dataset is honoured
func (r *Router) load(cmd *cobra.Command, _ []string) error {
	if r.handlers != nil {
		return nil
	}
	path, _ := cmd.Flags().GetString(FlagDataset)
	handlers, err := r.wire(path)
	if err != nil {
		return response.Error(cmd.OutOrStdout(), response.CodeInternal, "Failed to load dataset", err.Error())
	}
	r.handlers = handlers
	return nil
}
