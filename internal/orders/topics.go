package orders

// TopicWorkflow carries every storefront workflow event. Messages are keyed
// by the envelope's correlation id so one item's events stay ordered.
const TopicWorkflow = "storefront.workflow"
