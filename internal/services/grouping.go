package services

import (
	"sort"

	"kds-backend/internal/models"

	"github.com/google/uuid"
)

// GroupByTicketAndCourse assembles the flat work-query result into the
// ticket -> course hierarchy a full-service or expeditor display renders.
// Tickets come out oldest-opened first and courses ascending within a
// ticket; that ordering decides what a cook looks at next and must never
// be reshuffled downstream.
func GroupByTicketAndCourse(lines []*models.TicketLine, tickets map[uuid.UUID]*models.TicketSummary, marchFlags map[string]bool, monitor *models.Monitor) []*models.OrderGroup {
	byTicket := make(map[uuid.UUID]map[int][]*models.TicketLine)
	var ticketOrder []uuid.UUID

	for _, line := range lines {
		courses, seen := byTicket[line.TicketID]
		if !seen {
			courses = make(map[int][]*models.TicketLine)
			byTicket[line.TicketID] = courses
			ticketOrder = append(ticketOrder, line.TicketID)
		}
		courses[line.Course] = append(courses[line.Course], line)
	}

	groups := make([]*models.OrderGroup, 0, len(byTicket))
	for _, ticketID := range ticketOrder {
		summary := tickets[ticketID]
		if summary == nil {
			// The work query resolves tickets for every line; a hole here
			// means an upstream delete raced us. Render with what we have.
			summary = &models.TicketSummary{ID: ticketID}
		}

		courses := byTicket[ticketID]
		courseNumbers := make([]int, 0, len(courses))
		for c := range courses {
			courseNumbers = append(courseNumbers, c)
		}
		sort.Ints(courseNumbers)

		group := &models.OrderGroup{Ticket: summary}
		for _, c := range courseNumbers {
			courseLines := courses[c]
			cg := &models.CourseGroup{
				Course:        c,
				Marched:       marchFlags[models.CourseKey(ticketID, c)],
				AllItemsReady: allInBucket(courseLines, monitor.SecondaryStatuses),
			}
			for _, line := range courseLines {
				cg.Lines = append(cg.Lines, &models.StyledLine{TicketLine: line})
			}
			group.Courses = append(group.Courses, cg)
		}
		groups = append(groups, group)
	}

	// Oldest ticket first; stable so equal timestamps keep sent order.
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Ticket.OpenedAt.Before(groups[j].Ticket.OpenedAt)
	})
	return groups
}

func allInBucket(lines []*models.TicketLine, bucket []models.PrepStatus) bool {
	for _, line := range lines {
		if !line.StatusIn(bucket) {
			return false
		}
	}
	return len(lines) > 0
}

// GroupByProduct collapses lines into per-item outstanding counts for
// fast-food style boards where ticket identity is irrelevant. Sorted by
// total quantity descending, name ascending on ties.
func GroupByProduct(lines []*models.TicketLine) []*models.ProductAggregate {
	byName := make(map[string]*models.ProductAggregate)
	var order []string

	for _, line := range lines {
		agg, seen := byName[line.ItemName]
		if !seen {
			agg = &models.ProductAggregate{ItemName: line.ItemName}
			byName[line.ItemName] = agg
			order = append(order, line.ItemName)
		}
		switch line.PrepStatus {
		case models.StatusPending:
			agg.Pending += line.Quantity
		case models.StatusPreparing:
			agg.Preparing += line.Quantity
		case models.StatusReady:
			agg.Ready += line.Quantity
		}
	}

	aggs := make([]*models.ProductAggregate, 0, len(order))
	for _, name := range order {
		agg := byName[name]
		agg.Total = agg.Pending + agg.Preparing + agg.Ready
		aggs = append(aggs, agg)
	}
	sort.SliceStable(aggs, func(i, j int) bool {
		if aggs[i].Total != aggs[j].Total {
			return aggs[i].Total > aggs[j].Total
		}
		return aggs[i].ItemName < aggs[j].ItemName
	})
	return aggs
}
