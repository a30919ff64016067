package classify

// SeedQuestions returns clarifying question templates for a feature type.
// They are suggestions the drafting oracle may draw on, not a fixed quota:
// the ledger will still drop any that duplicate what the user already
// answered or disregarded.
func SeedQuestions(ft FeatureType) []string {
	if qs, ok := seedQuestions[ft]; ok {
		return qs
	}
	return seedQuestions[TypeGeneral]
}

var seedQuestions = map[FeatureType][]string{
	TypeAuthentication: {
		"Should users be able to register themselves, or are accounts created by an administrator?",
		"Do you need two-factor authentication, and if so via which channel (SMS, authenticator app, email)?",
		"What are the password complexity requirements?",
		"Should accounts lock after repeated failed login attempts?",
		"How should password reset work (email link, security questions, admin reset)?",
		"How long should a login session stay valid?",
	},
	TypeCRUD: {
		"Which fields does each record need, and which are required?",
		"Who is allowed to create, edit, and delete records?",
		"Should deletes be soft (recoverable) or permanent?",
		"Do you need an audit trail of who changed what?",
		"Should the list view support pagination or load everything at once?",
	},
	TypeReporting: {
		"Which metrics or KPIs should the report surface?",
		"What date ranges and filters do users need?",
		"Should reports be exportable, and in which formats (PDF, CSV, Excel)?",
		"How fresh does the data need to be (real-time, hourly, daily)?",
		"Who should have access to which reports?",
	},
	TypeIntegration: {
		"Which external system or API are we integrating with?",
		"Is the data flow one-way or bidirectional?",
		"How should authentication with the external service work (API key, OAuth)?",
		"What should happen when the external service is unavailable?",
		"How often should data sync (real-time, scheduled, on demand)?",
	},
	TypeUI: {
		"Which devices and screen sizes must the interface support?",
		"Are there existing design guidelines or a component library to follow?",
		"What validation feedback should forms give the user?",
		"Are there accessibility requirements to meet?",
	},
	TypeNotification: {
		"Which channels should notifications use (email, SMS, push, in-app)?",
		"Which events should trigger a notification?",
		"Can users configure or opt out of notifications?",
		"Should notifications be sent immediately or batched into digests?",
	},
	TypePayment: {
		"Which payment methods should be accepted?",
		"Which payment provider do you want to use (Stripe, PayPal, other)?",
		"Are payments one-time, recurring, or both?",
		"How should refunds and failed payments be handled?",
		"Which currencies need to be supported?",
	},
	TypeSearch: {
		"Which fields should the search cover?",
		"Do you need fuzzy matching or exact matches only?",
		"Which filters and sort options should accompany the results?",
		"Should search suggest completions as the user types?",
	},
	TypeWorkflow: {
		"What are the stages of the workflow and who owns each?",
		"What triggers a transition from one stage to the next?",
		"Are approvals required, and can they be delegated?",
		"What should happen when a step stalls (reminders, escalation)?",
	},
	TypeGeneral: {
		"Who are the primary users of this feature?",
		"What problem is this feature solving for them?",
		"Are there existing systems this needs to work with?",
		"How will you know the feature is successful?",
	},
}
