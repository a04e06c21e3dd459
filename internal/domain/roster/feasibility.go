package roster

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-market/internal/domain/player"
)

const (
	FeasibilityGreedy = "greedy"
	FeasibilityExact  = "exact"
)

// FeasibilityInput is the roster snapshot a guard reasons about.
type FeasibilityInput struct {
	Rules   Rules
	Draft   []player.Player
	Catalog []player.Player
}

// FeasibilityGuard decides whether one more player keeps the position
// minimums reachable with the slots left after it.
type FeasibilityGuard interface {
	AllowedPositions(in FeasibilityInput) []player.Position
	Admits(in FeasibilityInput, candidate player.Player) bool
}

func NewFeasibilityGuard(mode string) (FeasibilityGuard, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", FeasibilityGreedy:
		return GreedyGuard{}, nil
	case FeasibilityExact:
		return ExactGuard{}, nil
	default:
		return nil, fmt.Errorf("unknown feasibility mode %q", mode)
	}
}

// GreedyGuard checks each position independently: after placing one player
// of that position, the summed unmet minimums must fit the remaining slots.
type GreedyGuard struct{}

func (GreedyGuard) AllowedPositions(in FeasibilityInput) []player.Position {
	counts := positionCounts(in.Draft)
	remaining := in.Rules.MaxPlayers - len(in.Draft)

	out := make([]player.Position, 0, len(player.OrderedPositions))
	for _, pos := range player.OrderedPositions {
		if greedyAdmits(in.Rules, counts, remaining, pos) {
			out = append(out, pos)
		}
	}
	return out
}

func (GreedyGuard) Admits(in FeasibilityInput, candidate player.Player) bool {
	return greedyAdmits(in.Rules, positionCounts(in.Draft), in.Rules.MaxPlayers-len(in.Draft), candidate.Position)
}

func greedyAdmits(rules Rules, counts map[player.Position]int, remaining int, pos player.Position) bool {
	if remaining <= 0 {
		return false
	}
	return totalDeficit(rules, counts, pos) <= remaining-1
}

// ExactGuard adds a joint check on top of the greedy rule: the deficits left
// after the candidate must be coverable by undrafted catalog players without
// breaking the per-team cap. It is a max-flow over positions and real teams.
type ExactGuard struct{}

func (g ExactGuard) AllowedPositions(in FeasibilityInput) []player.Position {
	counts := positionCounts(in.Draft)
	remaining := in.Rules.MaxPlayers - len(in.Draft)
	drafted := draftedIDs(in.Draft)
	teams := teamCounts(in.Draft)

	out := make([]player.Position, 0, len(player.OrderedPositions))
	for _, pos := range player.OrderedPositions {
		if !greedyAdmits(in.Rules, counts, remaining, pos) {
			continue
		}
		for _, candidate := range in.Catalog {
			if candidate.Position != pos {
				continue
			}
			if _, ok := drafted[candidate.ID]; ok {
				continue
			}
			if teams[candidate.TeamID] >= in.Rules.MaxPerRealTeam {
				continue
			}
			if g.Admits(in, candidate) {
				out = append(out, pos)
				break
			}
		}
	}
	return out
}

func (ExactGuard) Admits(in FeasibilityInput, candidate player.Player) bool {
	counts := positionCounts(in.Draft)
	remaining := in.Rules.MaxPlayers - len(in.Draft)
	if !greedyAdmits(in.Rules, counts, remaining, candidate.Position) {
		return false
	}

	counts[candidate.Position]++
	teams := teamCounts(in.Draft)
	teams[candidate.TeamID]++

	deficits := make(map[player.Position]int)
	need := 0
	for _, pos := range player.OrderedPositions {
		if d := in.Rules.MinByPosition[pos] - counts[pos]; d > 0 {
			deficits[pos] = d
			need += d
		}
	}
	if need == 0 {
		return true
	}

	drafted := draftedIDs(in.Draft)
	drafted[candidate.ID] = struct{}{}

	// supply[pos][team] counts undrafted catalog players available.
	supply := make(map[player.Position]map[string]int)
	teamOrder := make([]string, 0)
	teamSeen := make(map[string]struct{})
	for _, item := range in.Catalog {
		if _, ok := drafted[item.ID]; ok {
			continue
		}
		if _, ok := deficits[item.Position]; !ok {
			continue
		}
		if supply[item.Position] == nil {
			supply[item.Position] = make(map[string]int)
		}
		supply[item.Position][item.TeamID]++
		if _, ok := teamSeen[item.TeamID]; !ok {
			teamSeen[item.TeamID] = struct{}{}
			teamOrder = append(teamOrder, item.TeamID)
		}
	}

	positions := make([]player.Position, 0, len(deficits))
	for _, pos := range player.OrderedPositions {
		if _, ok := deficits[pos]; ok {
			positions = append(positions, pos)
		}
	}

	// Nodes: 0 source, 1..P positions, P+1..P+T teams, P+T+1 sink.
	p := len(positions)
	nodes := p + len(teamOrder) + 2
	sink := nodes - 1
	capacity := make([][]int, nodes)
	for i := range capacity {
		capacity[i] = make([]int, nodes)
	}
	for i, pos := range positions {
		capacity[0][1+i] = deficits[pos]
		for j, team := range teamOrder {
			capacity[1+i][1+p+j] = supply[pos][team]
		}
	}
	for j, team := range teamOrder {
		capacity[1+p+j][sink] = max(0, in.Rules.MaxPerRealTeam-teams[team])
	}

	return maxFlow(capacity, 0, sink) >= need
}

func maxFlow(capacity [][]int, source, sink int) int {
	n := len(capacity)
	flow := 0
	for {
		parent := make([]int, n)
		for i := range parent {
			parent[i] = -1
		}
		parent[source] = source
		queue := []int{source}
		for len(queue) > 0 && parent[sink] == -1 {
			u := queue[0]
			queue = queue[1:]
			for v := 0; v < n; v++ {
				if parent[v] == -1 && capacity[u][v] > 0 {
					parent[v] = u
					queue = append(queue, v)
				}
			}
		}
		if parent[sink] == -1 {
			return flow
		}

		bottleneck := -1
		for v := sink; v != source; v = parent[v] {
			u := parent[v]
			if bottleneck == -1 || capacity[u][v] < bottleneck {
				bottleneck = capacity[u][v]
			}
		}
		for v := sink; v != source; v = parent[v] {
			u := parent[v]
			capacity[u][v] -= bottleneck
			capacity[v][u] += bottleneck
		}
		flow += bottleneck
	}
}

func positionCounts(players []player.Player) map[player.Position]int {
	out := make(map[player.Position]int)
	for _, item := range players {
		out[item.Position]++
	}
	return out
}

func teamCounts(players []player.Player) map[string]int {
	out := make(map[string]int)
	for _, item := range players {
		out[item.TeamID]++
	}
	return out
}

func draftedIDs(players []player.Player) map[string]struct{} {
	out := make(map[string]struct{}, len(players))
	for _, item := range players {
		out[item.ID] = struct{}{}
	}
	return out
}

func totalDeficit(rules Rules, counts map[player.Position]int, extra player.Position) int {
	total := 0
	for _, pos := range player.OrderedPositions {
		have := counts[pos]
		if pos == extra {
			have++
		}
		if d := rules.MinByPosition[pos] - have; d > 0 {
			total += d
		}
	}
	return total
}
