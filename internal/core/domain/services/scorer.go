package services

const (
	// distanceWeight is the share of the final score driven by distance savings.
	distanceWeight = 0.4
	// timeWeight is the share driven by placement-time compatibility.
	timeWeight = 0.3
	// alignmentWeight is the share driven by restaurant alignment.
	alignmentWeight = 0.3

	// baselineTripKm is the assumed independent trip distance per order.
	baselineTripKm = 5.0
	// baseLegKm is the fixed leg from the restaurant added to a combined route.
	baseLegKm = 2.0
	// timeWindowMinutes is the placement-time span at which compatibility reaches zero.
	timeWindowMinutes = 15.0
)

// MergeEfficiencyScorer is a domain service that rates a candidate merge
// cluster with a single score in [0, 1]. The score is a weighted sum of three
// bounded sub-scores:
//
//   - Distance efficiency (0.4): savings of an approximate combined route over
//     independent per-order trips. The combined route is the chain of
//     consecutive drop-off legs plus a fixed leg from the restaurant; each
//     independent trip is assumed a fixed baseline distance.
//   - Time-window compatibility (0.3): linear falloff of the span between the
//     earliest and latest placement timestamps, perfect at zero and exhausted
//     at fifteen minutes.
//   - Restaurant alignment (0.3): full marks when all members share one
//     restaurant, half marks otherwise. Clustering is restaurant-scoped
//     upstream, so the fallback guards against mixed input rather than
//     representing a real scenario.
type MergeEfficiencyScorer struct{}

// NewMergeEfficiencyScorer creates a new MergeEfficiencyScorer instance.
func NewMergeEfficiencyScorer() MergeEfficiencyScorer {
	return MergeEfficiencyScorer{}
}

// Score computes the efficiency score for a candidate cluster.
// Clusters with fewer than two members score zero: there is nothing to merge.
func (s MergeEfficiencyScorer) Score(cluster MergeCluster) float64 {
	if cluster.Size() < 2 {
		return 0
	}

	return distanceWeight*s.distanceEfficiency(cluster) +
		timeWeight*s.timeCompatibility(cluster) +
		alignmentWeight*s.restaurantAlignment(cluster)
}

// distanceEfficiency compares independent per-order trips against the
// approximate combined route. Unconstructed drop-off points produce infinite
// leg distances, which drive the efficiency to zero rather than failing.
func (s MergeEfficiencyScorer) distanceEfficiency(cluster MergeCluster) float64 {
	individual := baselineTripKm * float64(cluster.Size())

	combined := baseLegKm
	for i := 1; i < cluster.Size(); i++ {
		combined += cluster.Orders[i-1].Dropoff().DistanceKm(cluster.Orders[i].Dropoff())
	}

	efficiency := (individual - combined) / individual
	if efficiency < 0 {
		return 0
	}
	return efficiency
}

// timeCompatibility maps the placement-time span of the cluster onto [0, 1].
func (s MergeEfficiencyScorer) timeCompatibility(cluster MergeCluster) float64 {
	earliest, latest := cluster.Orders[0].PlacedAt(), cluster.Orders[0].PlacedAt()
	for _, o := range cluster.Orders[1:] {
		if o.PlacedAt().Before(earliest) {
			earliest = o.PlacedAt()
		}
		if o.PlacedAt().After(latest) {
			latest = o.PlacedAt()
		}
	}

	spanMinutes := latest.Sub(earliest).Minutes()
	compatibility := (timeWindowMinutes - spanMinutes) / timeWindowMinutes
	if compatibility < 0 {
		return 0
	}
	if compatibility > 1 {
		return 1
	}
	return compatibility
}

// restaurantAlignment checks that all members share one restaurant.
func (s MergeEfficiencyScorer) restaurantAlignment(cluster MergeCluster) float64 {
	first := cluster.Orders[0].RestaurantID()
	for _, o := range cluster.Orders[1:] {
		if !o.RestaurantID().IsEqual(first) {
			return 0.5
		}
	}
	return 1.0
}
