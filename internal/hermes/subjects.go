package hermes

const (
	SubjectWeightsUpdated       = "valumetric.ahp.weights.updated"
	SubjectWeightsInconsistent  = "valumetric.ahp.inconsistent"
	SubjectLaborReturnEvaluated = "valumetric.hcroi.evaluated"
	SubjectCostPolicyUpdated    = "valumetric.policy.cost.updated"
	SubjectWeightsRequest       = "valumetric.ahp.weights.request"

	StreamName   = "VALUMETRIC_EVENTS"
	StreamMaxAge = "2160h" // 90 days
)

// StreamSubjects are the outbound events kept in the stream. Requests stay
// plain core NATS so a requester gets the service's reply, not a PubAck.
var StreamSubjects = []string{
	SubjectWeightsUpdated,
	SubjectWeightsInconsistent,
	SubjectLaborReturnEvaluated,
	SubjectCostPolicyUpdated,
}
