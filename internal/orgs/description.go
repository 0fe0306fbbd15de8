package orgs

import "context"

// DescriptionController edits the description of one organization.
type DescriptionController struct {
	OrganizationID string
	Resource       Resource
	Logger         Logger
}

// UpdateDescription sends the new description upstream. Success is silent and
// failures are only logged; nothing is retried or returned.
func (c *DescriptionController) UpdateDescription(ctx context.Context, description string) {
	body := UpdateOrganization{Description: description}
	if err := c.Resource.Update(ctx, c.OrganizationID, body); err != nil {
		c.Logger.Error("Unable to update org description: {0}", err)
	}
}
