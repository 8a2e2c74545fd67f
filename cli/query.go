package cli

import (
	"encoding/json"

	"github.com/siherrmann/ranker/api/dto"
	"github.com/siherrmann/ranker/model"
	"github.com/spf13/cobra"
)

func newRankCommand(a *app) *cobra.Command {
	var graphName, file, withLabel, direction string
	request := model.DefaultRankRequest()

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Compute the personal rank of source vertices and print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openSingleGraph(graphName, file)
			if err != nil {
				return err
			}
			defer r.Close()

			request.WithLabel = model.WithLabel(withLabel)
			request.Direction = model.Direction(direction)

			entries, err := r.PersonalRank(cmd.Context(), &request)
			if err != nil {
				return err
			}

			return json.NewEncoder(cmd.OutOrStdout()).Encode(entries)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&graphName, "graph", "", "name of a configured graph")
	flags.StringVar(&file, "file", "", "YAML or JSON graph file loaded into memory")
	flags.StringVar(&request.Sources, "sources", "", "comma separated source vertex ids")
	flags.StringVar(&request.Label, "label", "", "edge label to follow")
	flags.Float64Var(&request.Alpha, "alpha", 0, "probability of following an edge, in (0, 1]")
	flags.IntVar(&request.MaxDepth, "max-depth", 0, "number of propagation rounds")
	flags.Int64Var(&request.Degree, "degree", request.Degree, "maximum edges followed per vertex, -1 for all")
	flags.Int64Var(&request.Limit, "limit", request.Limit, "maximum number of results, -1 for all")
	flags.StringVar(&withLabel, "with-label", string(request.WithLabel), "SAME_LABEL, OTHER_LABEL or BOTH_LABEL")
	flags.StringVar(&direction, "direction", string(request.Direction), "OUT or IN")
	flags.BoolVar(&request.Sorted, "sorted", request.Sorted, "sort results by descending score")
	_ = cmd.MarkFlagRequired("sources")
	_ = cmd.MarkFlagRequired("label")

	return cmd
}

func newNeighborsCommand(a *app) *cobra.Command {
	var graphName, file, direction string
	request := model.DefaultNeighborRequest()

	cmd := &cobra.Command{
		Use:   "neighbors",
		Short: "Print the vertices within max-depth hops of a source as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openSingleGraph(graphName, file)
			if err != nil {
				return err
			}
			defer r.Close()

			request.Direction = model.Direction(direction)

			results, err := r.KNeighbor(cmd.Context(), &request)
			if err != nil {
				return err
			}

			return json.NewEncoder(cmd.OutOrStdout()).Encode(dto.NeighborResponse{Vertices: results})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&graphName, "graph", "", "name of a configured graph")
	flags.StringVar(&file, "file", "", "YAML or JSON graph file loaded into memory")
	flags.StringVar(&request.Source, "source", "", "source vertex id")
	flags.StringVar(&request.Label, "label", "", "edge label to follow")
	flags.IntVar(&request.MaxDepth, "max-depth", request.MaxDepth, "maximum number of hops")
	flags.Int64Var(&request.Degree, "degree", request.Degree, "maximum edges followed per vertex, -1 for all")
	flags.Int64Var(&request.Limit, "limit", request.Limit, "maximum number of results, -1 for all")
	flags.StringVar(&direction, "direction", string(request.Direction), "OUT or IN")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("label")

	return cmd
}
