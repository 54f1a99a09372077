package api

import (
	"net/http"

	"github.com/sadopc/calendr/internal/service"
	"github.com/sadopc/calendr/internal/store"
)

// queryString returns nil for absent or empty parameters.
func queryString(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}

// queryBool treats only the literal "true" as true; any other present value
// filters for false.
func queryBool(r *http.Request, key string) *bool {
	v := queryString(r, key)
	if v == nil {
		return nil
	}
	b := *v == "true"
	return &b
}

// ---- events ----

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.svc.Events.List(r.Context(), store.EventFilter{
		CalendarID: queryString(r, "calendarId"),
		Date:       queryString(r, "date"),
		From:       queryString(r, "startDate"),
		To:         queryString(r, "endDate"),
	})
	if err != nil {
		s.fail(w, r, err, "fetch events")
		return
	}
	writeOK(w, http.StatusOK, events, "")
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	e, err := s.svc.Events.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err, "fetch event")
		return
	}
	writeOK(w, http.StatusOK, e, "")
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var in service.EventInput
	if !decode(w, r, &in) {
		return
	}
	e, err := s.svc.Events.Create(r.Context(), in)
	if err != nil {
		s.fail(w, r, err, "create event")
		return
	}
	writeOK(w, http.StatusCreated, e, "Event created successfully")
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	var in service.EventInput
	if !decode(w, r, &in) {
		return
	}
	e, err := s.svc.Events.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		s.fail(w, r, err, "update event")
		return
	}
	writeOK(w, http.StatusOK, e, "Event updated successfully")
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Events.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err, "delete event")
		return
	}
	writeOK(w, http.StatusOK, nil, "Event deleted successfully")
}

// ---- tasks ----

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.Tasks.List(r.Context(), store.TaskFilter{
		TaskListID:  queryString(r, "taskListId"),
		IsCompleted: queryBool(r, "isCompleted"),
	})
	if err != nil {
		s.fail(w, r, err, "fetch tasks")
		return
	}
	writeOK(w, http.StatusOK, tasks, "")
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Tasks.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err, "fetch task")
		return
	}
	writeOK(w, http.StatusOK, t, "")
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var in service.TaskInput
	if !decode(w, r, &in) {
		return
	}
	t, err := s.svc.Tasks.Create(r.Context(), in)
	if err != nil {
		s.fail(w, r, err, "create task")
		return
	}
	writeOK(w, http.StatusCreated, t, "Task created successfully")
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var in service.TaskInput
	if !decode(w, r, &in) {
		return
	}
	t, err := s.svc.Tasks.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		s.fail(w, r, err, "update task")
		return
	}
	writeOK(w, http.StatusOK, t, "Task updated successfully")
}

func (s *Server) toggleTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Tasks.Toggle(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err, "toggle task")
		return
	}
	writeOK(w, http.StatusOK, t, "Task completion toggled successfully")
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Tasks.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err, "delete task")
		return
	}
	writeOK(w, http.StatusOK, nil, "Task deleted successfully")
}

// ---- appointments ----

func (s *Server) listAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := s.svc.Appointments.List(r.Context(), store.AppointmentFilter{
		CalendarID: queryString(r, "calendarId"),
		Date:       queryString(r, "date"),
		From:       queryString(r, "startDate"),
		To:         queryString(r, "endDate"),
	})
	if err != nil {
		s.fail(w, r, err, "fetch appointments")
		return
	}
	writeOK(w, http.StatusOK, appts, "")
}

func (s *Server) getAppointment(w http.ResponseWriter, r *http.Request) {
	a, err := s.svc.Appointments.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err, "fetch appointment")
		return
	}
	writeOK(w, http.StatusOK, a, "")
}

func (s *Server) createAppointment(w http.ResponseWriter, r *http.Request) {
	var in service.AppointmentInput
	if !decode(w, r, &in) {
		return
	}
	a, err := s.svc.Appointments.Create(r.Context(), in)
	if err != nil {
		s.fail(w, r, err, "create appointment")
		return
	}
	writeOK(w, http.StatusCreated, a, "Appointment created successfully")
}

func (s *Server) updateAppointment(w http.ResponseWriter, r *http.Request) {
	var in service.AppointmentInput
	if !decode(w, r, &in) {
		return
	}
	a, err := s.svc.Appointments.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		s.fail(w, r, err, "update appointment")
		return
	}
	writeOK(w, http.StatusOK, a, "Appointment updated successfully")
}

func (s *Server) deleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Appointments.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err, "delete appointment")
		return
	}
	writeOK(w, http.StatusOK, nil, "Appointment deleted successfully")
}

// ---- calendars ----

func (s *Server) listCalendars(w http.ResponseWriter, r *http.Request) {
	cals, err := s.svc.Calendars.List(r.Context())
	if err != nil {
		s.fail(w, r, err, "fetch calendars")
		return
	}
	writeOK(w, http.StatusOK, cals, "")
}

func (s *Server) getCalendar(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Calendars.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err, "fetch calendar")
		return
	}
	writeOK(w, http.StatusOK, c, "")
}

func (s *Server) createCalendar(w http.ResponseWriter, r *http.Request) {
	var in service.CalendarInput
	if !decode(w, r, &in) {
		return
	}
	c, err := s.svc.Calendars.Create(r.Context(), in)
	if err != nil {
		s.fail(w, r, err, "create calendar")
		return
	}
	writeOK(w, http.StatusCreated, c, "Calendar created successfully")
}

func (s *Server) updateCalendar(w http.ResponseWriter, r *http.Request) {
	var in service.CalendarInput
	if !decode(w, r, &in) {
		return
	}
	c, err := s.svc.Calendars.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		s.fail(w, r, err, "update calendar")
		return
	}
	writeOK(w, http.StatusOK, c, "Calendar updated successfully")
}

func (s *Server) toggleCalendar(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Calendars.Toggle(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err, "toggle calendar visibility")
		return
	}
	writeOK(w, http.StatusOK, c, "Calendar visibility toggled successfully")
}

func (s *Server) deleteCalendar(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Calendars.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err, "delete calendar")
		return
	}
	writeOK(w, http.StatusOK, nil, "Calendar deleted successfully")
}

// ---- task lists ----

func (s *Server) listTaskLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.svc.TaskLists.List(r.Context())
	if err != nil {
		s.fail(w, r, err, "fetch task lists")
		return
	}
	writeOK(w, http.StatusOK, lists, "")
}

func (s *Server) getTaskList(w http.ResponseWriter, r *http.Request) {
	l, err := s.svc.TaskLists.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err, "fetch task list")
		return
	}
	writeOK(w, http.StatusOK, l, "")
}

func (s *Server) createTaskList(w http.ResponseWriter, r *http.Request) {
	var in service.TaskListInput
	if !decode(w, r, &in) {
		return
	}
	l, err := s.svc.TaskLists.Create(r.Context(), in)
	if err != nil {
		s.fail(w, r, err, "create task list")
		return
	}
	writeOK(w, http.StatusCreated, l, "Task list created successfully")
}

func (s *Server) updateTaskList(w http.ResponseWriter, r *http.Request) {
	var in service.TaskListInput
	if !decode(w, r, &in) {
		return
	}
	l, err := s.svc.TaskLists.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		s.fail(w, r, err, "update task list")
		return
	}
	writeOK(w, http.StatusOK, l, "Task list updated successfully")
}

func (s *Server) deleteTaskList(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.TaskLists.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err, "delete task list")
		return
	}
	writeOK(w, http.StatusOK, nil, "Task list and associated tasks deleted successfully")
}
