package dynamo_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/vmath"
)

const tol = 1e-9

var _ = Describe("Simulation", func() {
	var s *dynamo.Simulation

	BeforeEach(func() {
		var err error
		s, err = dynamo.NewSimulation(dynamo.DefaultConstants())
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("a single body", func() {
		It("damps horizontal and vertical speed when gravity is off", func() {
			_, err := s.Spawn(dynamo.SpawnParams{
				Vel: vmath.V(3, 4), Radius: 50, GravityCoef: 0, FrictionCoef: 1, Mass: 1,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Tick()).To(Succeed())

			f := s.Constants().AirFriction()
			b, ok := s.Body(0)
			Expect(ok).To(BeTrue())
			Expect(b.Vel.X).To(BeNumerically("~", 3-3*f, tol))
			Expect(b.Vel.Y).To(BeNumerically("~", 4-4*f, tol))
			Expect(b.Pos).To(Equal(b.Vel))
		})

		It("falls toward terminal velocity without overshooting", func() {
			_, err := s.Spawn(dynamo.DefaultSpawn(vmath.V(0, 0)))
			Expect(err).NotTo(HaveOccurred())

			prev := 0.0
			for i := 0; i < 1000; i++ {
				Expect(s.Tick()).To(Succeed())
				b, _ := s.Body(0)
				Expect(b.Vel.Y).To(BeNumerically(">=", prev-tol))
				Expect(b.Vel.Y).To(BeNumerically("<=", 30+tol))
				prev = b.Vel.Y
			}
			Expect(prev).To(BeNumerically("~", 30, 1e-6))
		})
	})

	Describe("collisions", func() {
		It("swaps velocities of equal masses meeting head-on", func() {
			s.Spawn(dynamo.SpawnParams{Pos: vmath.V(-5, 0), Vel: vmath.V(5, 0), Radius: 10, Mass: 1})
			s.Spawn(dynamo.SpawnParams{Pos: vmath.V(20, 0), Vel: vmath.V(-5, 0), Radius: 10, Mass: 1})

			Expect(s.Tick()).To(Succeed())

			bodies := s.Bodies()
			Expect(bodies[0].Vel.X).To(BeNumerically("~", -5, tol))
			Expect(bodies[0].Vel.Y).To(BeNumerically("~", 0, tol))
			Expect(bodies[1].Vel.X).To(BeNumerically("~", 5, tol))
			Expect(bodies[1].Vel.Y).To(BeNumerically("~", 0, tol))
		})

		It("conserves momentum for unequal masses", func() {
			s.Spawn(dynamo.SpawnParams{Pos: vmath.V(0, 0), Vel: vmath.V(2, 1), Radius: 10, Mass: 3})
			s.Spawn(dynamo.SpawnParams{Pos: vmath.V(12, 9), Vel: vmath.V(-1, -2), Radius: 10, Mass: 1})

			before := vmath.V(0, 0)
			for _, b := range s.Bodies() {
				before = before.Add(b.Momentum())
			}
			Expect(s.Tick()).To(Succeed())
			Expect(s.Collisions()).To(Equal(1))

			after := vmath.V(0, 0)
			for _, b := range s.Bodies() {
				after = after.Add(b.Momentum())
			}
			Expect(after.X).To(BeNumerically("~", before.X, tol))
			Expect(after.Y).To(BeNumerically("~", before.Y, tol))
		})

		It("uses the velocity produced by an earlier pair in the same tick", func() {
			s.Spawn(dynamo.SpawnParams{Pos: vmath.V(-20, 0), Vel: vmath.V(6, 0), Radius: 10, Mass: 1})
			s.Spawn(dynamo.SpawnParams{Pos: vmath.V(0, 0), Radius: 10, Mass: 1})
			s.Spawn(dynamo.SpawnParams{Pos: vmath.V(20, 0), Radius: 10, Mass: 1})

			Expect(s.Tick()).To(Succeed())

			bodies := s.Bodies()
			Expect(bodies[0].Vel.X).To(BeNumerically("~", 0, tol))
			Expect(bodies[1].Vel.X).To(BeNumerically("~", 0, tol))
			Expect(bodies[2].Vel.X).To(BeNumerically("~", 6, tol))
			Expect(s.Collisions()).To(Equal(2))
		})

		It("does not revisit a pair after a later pair changes its velocity", func() {
			s.Spawn(dynamo.SpawnParams{Pos: vmath.V(0, 0), Radius: 10, Mass: 1})
			s.Spawn(dynamo.SpawnParams{Pos: vmath.V(20, 0), Radius: 10, Mass: 1})
			s.Spawn(dynamo.SpawnParams{Pos: vmath.V(-20, 0), Vel: vmath.V(6, 0), Radius: 10, Mass: 1})

			Expect(s.Tick()).To(Succeed())

			bodies := s.Bodies()
			Expect(bodies[0].Vel.X).To(BeNumerically("~", 6, tol))
			Expect(bodies[1].Vel.X).To(BeNumerically("~", 0, tol))
			Expect(bodies[2].Vel.X).To(BeNumerically("~", 0, tol))
		})

		It("leaves separated bodies alone", func() {
			s.Spawn(dynamo.SpawnParams{Pos: vmath.V(0, 0), Radius: 10, Mass: 1})
			s.Spawn(dynamo.SpawnParams{Pos: vmath.V(20.5, 0), Radius: 10, Mass: 1})
			Expect(s.Tick()).To(Succeed())
			Expect(s.Collisions()).To(BeZero())
		})
	})

	Describe("spawn requests", func() {
		It("rejects invalid parameters without touching the queue", func() {
			err := s.RequestSpawn(dynamo.SpawnParams{Radius: 5, Mass: -2})
			Expect(err).To(MatchError(dynamo.ErrInvalidBody))
			Expect(s.Pending()).To(BeZero())
		})

		It("applies queued bodies at the next tick boundary", func() {
			Expect(s.RequestSpawn(dynamo.DefaultSpawn(vmath.V(100, 100)))).To(Succeed())
			Expect(s.Len()).To(BeZero())
			Expect(s.Tick()).To(Succeed())
			Expect(s.Len()).To(Equal(1))
		})
	})

	Describe("Run", func() {
		It("records frames and stops on cancellation", func() {
			s.Spawn(dynamo.DefaultSpawn(vmath.V(0, 0)))
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			res, err := s.Run(ctx, 50, dynamo.RunOptions{Record: true})
			Expect(err).To(MatchError(context.Canceled))
			Expect(res.Frames).To(HaveLen(1))
			Expect(res.TicksTaken).To(BeZero())
		})
	})
})
