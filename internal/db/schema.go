package db

// SchemaSQL contains the database schema initialization SQL.
// Record ids double as the domain ids (developer_id, ticket_id,
// assignment_id); the id is also stored as a plain field so queries can
// SELECT it back without record-id decoding.
const SchemaSQL = `
    -- ==========================================================================
    -- DEVELOPER TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS developer SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS developer_id ON developer TYPE string;
    DEFINE FIELD IF NOT EXISTS name ON developer TYPE string;
    DEFINE FIELD IF NOT EXISTS email ON developer TYPE string DEFAULT "";
    -- skill name -> proficiency 0-10
    DEFINE FIELD IF NOT EXISTS skills ON developer TYPE object FLEXIBLE DEFAULT {};
    DEFINE FIELD IF NOT EXISTS specializations ON developer TYPE array<string> DEFAULT [];
    DEFINE FIELD IF NOT EXISTS current_workload ON developer TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS max_capacity ON developer TYPE int DEFAULT 5;
    DEFINE FIELD IF NOT EXISTS performance_score ON developer TYPE float DEFAULT 5.0;
    DEFINE FIELD IF NOT EXISTS availability ON developer TYPE string DEFAULT "available";
    DEFINE FIELD IF NOT EXISTS timezone ON developer TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS preferred_ticket_types ON developer TYPE array<string> DEFAULT [];
    DEFINE FIELD IF NOT EXISTS success_rate ON developer TYPE float DEFAULT 80.0;
    DEFINE FIELD IF NOT EXISTS avg_completion_time ON developer TYPE float DEFAULT 5.0;
    DEFINE FIELD IF NOT EXISTS last_active ON developer TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS created ON developer TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS developer_availability ON developer FIELDS availability;

    -- ==========================================================================
    -- TICKET TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS ticket SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS ticket_id ON ticket TYPE string;
    DEFINE FIELD IF NOT EXISTS key ON ticket TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS title ON ticket TYPE string;
    DEFINE FIELD IF NOT EXISTS description ON ticket TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS priority ON ticket TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS assignee ON ticket TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS reporter ON ticket TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS labels ON ticket TYPE array<string> DEFAULT [];
    DEFINE FIELD IF NOT EXISTS components ON ticket TYPE array<string> DEFAULT [];
    DEFINE FIELD IF NOT EXISTS figma_links ON ticket TYPE array<string> DEFAULT [];
    DEFINE FIELD IF NOT EXISTS deadline ON ticket TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS created ON ticket TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS updated ON ticket TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS ticket_priority ON ticket FIELDS priority;
    DEFINE INDEX IF NOT EXISTS ticket_updated ON ticket FIELDS updated;

    -- ==========================================================================
    -- ASSIGNMENT TABLE (assignment history)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS assignment SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS assignment_id ON assignment TYPE string;
    DEFINE FIELD IF NOT EXISTS ticket_id ON assignment TYPE string;
    DEFINE FIELD IF NOT EXISTS developer_id ON assignment TYPE string;
    DEFINE FIELD IF NOT EXISTS assigned_at ON assignment TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS completed_at ON assignment TYPE option<datetime>;
    DEFINE FIELD IF NOT EXISTS success_rating ON assignment TYPE option<float>;
    DEFINE FIELD IF NOT EXISTS actual_days ON assignment TYPE option<float>;
    DEFINE FIELD IF NOT EXISTS skill_match_score ON assignment TYPE float DEFAULT 0.0;
    DEFINE FIELD IF NOT EXISTS workload_impact ON assignment TYPE string DEFAULT "unknown";
    DEFINE FIELD IF NOT EXISTS notes ON assignment TYPE string DEFAULT "";

    DEFINE INDEX IF NOT EXISTS assignment_ticket ON assignment FIELDS ticket_id;
    DEFINE INDEX IF NOT EXISTS assignment_developer ON assignment FIELDS developer_id;
`
